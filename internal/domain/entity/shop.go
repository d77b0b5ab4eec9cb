package entity

import "time"

// BankDetail holds the payment coordinates printed on invoices.
type BankDetail struct {
	BankName          string `json:"bank_name"`
	AccountNumber     string `json:"account_number"`
	IFSCCode          string `json:"ifsc_code"`
	AccountHolderName string `json:"account_holder_name"`
}

// Shop is a billing entity. Ownership is not a column here; it is recorded
// exclusively through UserShop edges, so a shop can have several users with
// different roles.
type Shop struct {
	ID           string
	Name         string // min length 2
	GSTIN        string
	PAN          string
	CIN          string
	Address      string
	State        string
	StateCode    string
	PIN          string
	BankDetail   *BankDetail // optional
	SignatureRef string      // optional reference to a digital-signature artifact
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
