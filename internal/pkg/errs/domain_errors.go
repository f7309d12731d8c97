package errs

import "errors"

// Sentinel errors shared by the usecase and handler layers
var (
	// Checkout input errors
	ErrUnknownProduct  = errors.New("unknown product")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidMetadata = errors.New("invalid metadata")

	// Webhook errors
	ErrVerificationFailed = errors.New("webhook verification failed")

	// Upstream errors (payment processor, domain collaborators)
	ErrTransientUpstream = errors.New("transient upstream error")
	ErrSessionNotFound   = errors.New("checkout session not found")

	// Fulfillment errors
	ErrFulfillmentInProgress = errors.New("fulfillment in progress")
	ErrFulfillmentHandler    = errors.New("fulfillment handler failed")
	ErrInvalidFulfillment    = errors.New("invalid fulfillment metadata")
	ErrRecordNotFound        = errors.New("fulfillment record not found")
	ErrClaimLost             = errors.New("fulfillment claim lost")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
