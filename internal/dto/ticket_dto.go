package dto

import "strconv"

const (
	InvoicePathName    = "9-Ayrıntılı Fatura Talebi"
	invoiceDescription = "Ayrıntılı fatura talebi - Polaris müşterisi"
)

type ExternalQuestion struct {
	Question string `json:"Question"`
	Answer   string `json:"Answer"`
}

type ExternalQuestionList struct {
	PathName          string             `json:"PathName"`
	Duration          string             `json:"Duration"`
	ExternalQuestions []ExternalQuestion `json:"ExternalQuestions"`
}

type SRStructure struct {
	TripletNumber           string               `json:"TripletNumber"`
	Type                    string               `json:"Type"`
	Area                    string               `json:"Area"`
	SubArea                 string               `json:"SubArea"`
	Status                  string               `json:"Status"`
	Priority                string               `json:"Priority"`
	Owner                   string               `json:"Owner"`
	Description             string               `json:"Description"`
	OrderID                 string               `json:"OrderID"`
	InvoiceNumber           string               `json:"InvoiceNumber"`
	Conclusion              string               `json:"Conclusion"`
	SubConclusion           string               `json:"SubConclusion"`
	Reason                  string               `json:"Reason"`
	MaximoTicketID          string               `json:"MaximoTicketId"`
	ContactNumber           string               `json:"ContactNumber"`
	Details                 []interface{}        `json:"Details"`
	ListOfExternalQuestions ExternalQuestionList `json:"ListOfExternalQuestions"`
	SubStatus               string               `json:"SubStatus"`
	IBAN                    string               `json:"IBAN"`
	Amount                  string               `json:"Amount"`
}

// ServiceRequest is the billing ticket payload forwarded to the ticketing system.
type ServiceRequest struct {
	LoggedMSISDN       string      `json:"LoggedMSISDN" validate:"required,numeric,min=10,max=12"`
	BillingAccountCode string      `json:"BillingAccountCode"`
	CustomerCode       *string     `json:"CustomerCode"`
	MSISDN             string      `json:"MSISDN" validate:"required,numeric,min=10,max=12"`
	ServiceRequestID   string      `json:"ServiceRequestID"`
	TCKN               string      `json:"TCKN"`
	SRStructure        SRStructure `json:"SRStructure"`
}

type ServiceRequestResponse struct {
	Success  bool   `json:"success"`
	SRNumber string `json:"srNumber,omitempty"`
	Message  string `json:"message,omitempty"`
}

// NewInvoiceRequest builds the detailed invoice request for one billing period.
func NewInvoiceRequest(msisdn string, year, month int) ServiceRequest {
	y, m := strconv.Itoa(year), strconv.Itoa(month)
	return ServiceRequest{
		LoggedMSISDN: msisdn,
		MSISDN:       msisdn,
		SRStructure: SRStructure{
			TripletNumber: "9",
			Status:        "Closed",
			Description:   invoiceDescription,
			Details:       []interface{}{},
			ListOfExternalQuestions: ExternalQuestionList{
				PathName: InvoicePathName,
				Duration: "60",
				ExternalQuestions: []ExternalQuestion{
					{Question: InvoicePathName + "_Question_1", Answer: y},
					{Question: InvoicePathName + "_Question_3", Answer: m},
					{Question: InvoicePathName + "_Question_4", Answer: m},
				},
			},
		},
	}
}
