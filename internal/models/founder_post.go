package models

import "time"

// FounderPost is an accepted proposal, publicly visible on the investment
// feed. It carries every attribute of the PendingPost it was promoted from,
// plus a reference to that source row so the reconciliation sweep can repair
// a promotion that crashed between create and delete.
type FounderPost struct {
	ID                       uint       `gorm:"primaryKey" json:"_id"`
	PendingPostID            uint       `gorm:"index" json:"-"`
	BusinessName             string     `gorm:"not null" json:"businessName"`
	Email                    string     `gorm:"not null" json:"email"`
	Address                  string     `json:"address"`
	Phone                    string     `json:"phone"`
	BusinessCategory         string     `json:"businessCategory"`
	BusinessSector           string     `json:"businessSector"`
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

// PromoteFromPending builds a FounderPost carrying every attribute of the
// pending post. The owning user defaults to the pending post's own owner when
// present, else the reviewer-supplied userID.
func PromoteFromPending(p *PendingPost, fallbackUserID uint) *FounderPost {
	owner := p.UserID
	if owner == 0 {
		owner = fallbackUserID
	}
	return &FounderPost{
		PendingPostID:            p.ID,
		BusinessName:             p.BusinessName,
		Email:                    p.Email,
		Address:                  p.Address,
		Phone:                    p.Phone,
		BusinessCategory:         p.BusinessCategory,
		BusinessSector:           p.BusinessSector,
		InvestmentDuration:       p.InvestmentDuration,
		SecurityOption:           p.SecurityOption,
		OtherSecurityOption:      p.OtherSecurityOption,
		DocumentationOption:      p.DocumentationOption,
		OtherDocumentationOption: p.OtherDocumentationOption,
		Assets:                   p.Assets,
		Revenue:                  p.Revenue,
		FundingAmount:            p.FundingAmount,
		FundingHelp:              p.FundingHelp,
		ReturnPlan:               p.ReturnPlan,
		BusinessSafety:           p.BusinessSafety,
		AdditionalComments:       p.AdditionalComments,
		ProjectedROI:             p.ProjectedROI,
		MinInvestment:            p.MinInvestment,
		BusinessPictures:         p.BusinessPictures,
		NidFile:                  p.NidFile,
		TinFile:                  p.TinFile,
		TaxFile:                  p.TaxFile,
		TradeLicenseFile:         p.TradeLicenseFile,
		BankStatementFile:        p.BankStatementFile,
		SecurityFile:             p.SecurityFile,
		FinancialFile:            p.FinancialFile,
		UserID:                   owner,
	}
}
