package dto

type APIErrorResponse struct {
	Message   string    `json:"message"`
	ErrorCode ErrorCode `json:"error_code,omitempty"`
}

type ErrorCode string

const (
	// import related
	HeaderNotFound        ErrorCode = "header_not_found"
	RequiredColumnMissing ErrorCode = "required_column_missing"
	NoDataFound           ErrorCode = "no_data_found"
	UnknownEncoding       ErrorCode = "unknown_encoding"
)
