// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringList is an ordered list of strings stored as a JSON text column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// PendingPost is a founder's funding proposal awaiting administrator review.
// It is never mutated in place: review either promotes it to a FounderPost or
// destroys it.
type PendingPost struct {
	ID                       uint       `gorm:"primaryKey" json:"_id"`
	BusinessName             string     `gorm:"not null" json:"businessName"`
	Email                    string     `gorm:"not null" json:"email"`
	Address                  string     `gorm:"not null" json:"address"`
	Phone                    string     `gorm:"not null" json:"phone"`
	BusinessCategory         string     `gorm:"not null" json:"businessCategory"`
	BusinessSector           string     `gorm:"not null" json:"businessSector"`
	InvestmentDuration       string     `json:"investmentDuration"`
	SecurityOption           string     `json:"securityOption"`
	OtherSecurityOption      string     `json:"otherSecurityOption,omitempty"`
	DocumentationOption      string     `json:"documentationOption"`
	OtherDocumentationOption string     `json:"otherDocumentationOption,omitempty"`
	Assets                   string     `json:"assets"`
	Revenue                  string     `json:"revenue"`
	FundingAmount            string     `json:"fundingAmount"`
	FundingHelp              string     `json:"fundingHelp"`
	ReturnPlan               string     `json:"returnPlan"`
	BusinessSafety           string     `json:"businessSafety"`
	AdditionalComments       string     `json:"additionalComments,omitempty"`
	ProjectedROI             string     `json:"projectedROI"`
	MinInvestment            string     `json:"minInvestment"`
	BusinessPictures         StringList `gorm:"type:text" json:"businessPicture"`
	NidFile                  string     `json:"nidFile,omitempty"`
	TinFile                  string     `json:"tinFile,omitempty"`
	TaxFile                  string     `json:"taxFile,omitempty"`
	TradeLicenseFile         string     `json:"tradeLicenseFile,omitempty"`
	BankStatementFile        string     `json:"bankStatementFile,omitempty"`
	SecurityFile             string     `json:"securityFile,omitempty"`
	FinancialFile            string     `json:"financialFile,omitempty"`
	UserID                   uint       `gorm:"index" json:"userId"`
	CreatedAt                time.Time  `json:"createdAt"`
	UpdatedAt                time.Time  `json:"updatedAt"`
}
