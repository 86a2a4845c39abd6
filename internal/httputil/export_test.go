package httputil

// Exposed for white-box tests.
var (
	GetOnceExported     = getOnce
	CheckStatusExported = checkStatus
)
