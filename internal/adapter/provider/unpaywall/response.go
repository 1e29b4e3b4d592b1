package unpaywall

// apiRecord is the subset of GET /v2/{doi} the service needs.
type apiRecord struct {
	DOI            string       `json:"doi"`
	IsOA           bool         `json:"is_oa"`
	BestOALocation *apiLocation `json:"best_oa_location"`
}

type apiLocation struct {
	URL       string `json:"url"`
	URLForPDF string `json:"url_for_pdf"`
	Version   string `json:"version"`
	HostType  string `json:"host_type"`
}
