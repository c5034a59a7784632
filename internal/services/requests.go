package services

type ScanRequest struct {
	RootPath string
	Matcher  *Matcher
}

type DeleteRequest struct {
	Paths    []string
	SafeMode bool
}
