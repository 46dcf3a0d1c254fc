// Project Structure Overview
/*
fractora-backend/
├── cmd/
│   └── server/
│       └── main.go
├── internal/
│   ├── config/
│   │   ├── config.go
│   │   └── database.go
│   ├── models/
│   │   ├── user.go
│   │   ├── asset.go
│   │   ├── listing.go
│   │   ├── balance.go
│   │   ├── transaction.go
│   │   ├── errors.go
│   │   └── common.go
│   ├── handlers/
│   │   ├── auth.go
│   │   ├── asset.go
│   │   ├── listing.go
│   │   ├── payment.go
│   │   ├── portfolio.go
│   │   └── admin.go
│   ├── services/
│   │   ├── auth_service.go
│   │   ├── asset_service.go
│   │   ├── listing_service.go
│   │   ├── settlement.go
│   │   ├── payment_service.go
│   │   ├── provenance_service.go
│   │   ├── authorization_service.go
│   │   ├── admin_service.go
│   │   ├── storage_service.go
│   │   └── notification_service.go
│   ├── ledger/
│   │   ├── ledger.go
│   │   ├── gorm.go
│   │   └── memory.go
│   ├── middleware/
│   │   ├── auth.go
│   │   ├── cors.go
│   │   ├── rate_limit.go
│   │   ├── i18n.go
│   │   └── logging.go
│   ├── database/
│   │   └── connection.go
│   ├── i18n/
│   │   ├── i18n.go
│   │   ├── locales/
│   │   │   ├── en.json
│   │   │   └── zh_TW.json
│   │   └── keys.go
│   ├── utils/
│   │   ├── jwt.go
│   │   ├── validator.go
│   │   ├── crypto.go
│   │   ├── pagination.go
│   │   └── response.go
│   └── router/
│       └── router.go
├── go.mod
├── go.sum
└── README.md
*/

package fractorabackend

// This file shows the project structure and main entry point
// The actual implementation will be in separate files as shown in the structure above
