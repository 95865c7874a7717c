package search

// Search model types shared between the API layer and the TED client.

// Filter is the canonical search request. The zero value is an empty filter.
// All fields use their type's empty value for "unset"; a Filter produced by
// Normalize never carries malformed CPV codes or duplicate entries.
type Filter struct {
	CPVCodes       []string `json:"cpvs"`
	GeoCodes       []string `json:"geo,omitempty"`
	FreeText       string   `json:"text"`
	PublishedAfter string   `json:"dateFrom"`
	DeadlineBefore string   `json:"deadlineTo,omitempty"`
	BuyerCountry   string   `json:"country"`
	BuyerCity      string   `json:"city"`
	NoticeType     string   `json:"noticeType,omitempty"`
	ValueMin       string   `json:"valueMin,omitempty"`
	ValueMax       string   `json:"valueMax,omitempty"`
}

// Notice is the flattened, canonical search result record. Optional fields
// carry omitempty so the JSON shape matches what the UI expects.
type Notice struct {
	PublicationNumber    string `json:"publicationNumber"`
	PublicationDate      string `json:"publicationDate"`
	DeadlineDate         string `json:"deadlineDate,omitempty"`
	Title                string `json:"title"`
	BuyerName            string `json:"buyerName"`
	BuyerCity            string `json:"buyerCity,omitempty"`
	Country              string `json:"country,omitempty"`
	DocumentURL          string `json:"documentUrl,omitempty"`
	EstimatedValue       string `json:"value,omitempty"`
	ValueCurrency        string `json:"valueCurrency,omitempty"`
	Description          string `json:"description,omitempty"`
	CPVClassification    string `json:"classification,omitempty"`
	ContractNature       string `json:"contractNature,omitempty"`
	NoticeType           string `json:"noticeType,omitempty"`
	ProcedureType        string `json:"procedureType,omitempty"`
	IsFrameworkAgreement *bool  `json:"frameworkAgreement,omitempty"`
}
