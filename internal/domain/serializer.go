package domain

// ResponseSerializer turns a company into the response bytes captured for
// idempotent replay. The caller supplies it so the core stays free of any
// wire format.
type ResponseSerializer func(Company) ([]byte, error)
