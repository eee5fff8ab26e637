package utils

const (
	OrganizationName                      = "Bostadsportal"
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	ContentTypeZip  = "application/zip"
	ContentTypeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)
