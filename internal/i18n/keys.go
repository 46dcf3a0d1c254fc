// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"
	KeyWarning = "warning"
	KeyInfo    = "info"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAccessDenied           = "auth.access_denied"

	// User Management
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"
	KeyUserSuspended      = "user.suspended"

	// Assets
	KeyAssetCreated        = "asset.created"
	KeyAssetNotFound       = "asset.not_found"
	KeyAssetInactive       = "asset.inactive"
	KeyAssetDeactivated    = "asset.deactivated"
	KeyAssetMintSuccess    = "asset.mint_success"
	KeyAssetSupplyExceeded = "asset.supply_exceeded"
	KeyAssetInvalidType    = "asset.invalid_type"

	// Listings
	KeyListingCreated            = "listing.created"
	KeyListingNotFound           = "listing.not_found"
	KeyListingInactive           = "listing.inactive"
	KeyListingClosed             = "listing.closed"
	KeyListingInsufficientAmount = "listing.insufficient_amount"
	KeyListingPurchaseSuccess    = "listing.purchase_success"

	// Payments
	KeyPaymentSuccess           = "payment.success"
	KeyPaymentFailed            = "payment.failed"
	KeyPaymentPending           = "payment.pending"
	KeyPaymentInvalidAmount     = "payment.invalid_amount"
	KeyPaymentInsufficientFunds = "payment.insufficient_funds"
	KeyPaymentDepositCreated    = "payment.deposit_created"

	// Tokens
	KeyTokenTransferSuccess      = "token.transfer_success"
	KeyTokenInsufficientBalance  = "token.insufficient_balance"
	KeyTokenTransferNotPermitted = "token.transfer_not_permitted"

	// Admin
	KeyAdminActionSuccess = "admin.action_success"
	KeyAdminAccessDenied  = "admin.access_denied"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationTooShort = "validation.too_short"
	KeyValidationTooLong  = "validation.too_long"
	KeyValidationEmail    = "validation.invalid_email"
	KeyValidationPassword = "validation.invalid_password"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"

	// Search
	KeySearchNoResults    = "search.no_results"
	KeySearchResultsFound = "search.results_found"

	// Notifications
	KeyNotificationSent   = "notification.sent"
	KeyNotificationFailed = "notification.failed"
)
