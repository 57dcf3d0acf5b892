// Package lexicon holds the static vocabularies and compiled patterns used to
// classify legal text. Order matters: lookups return the first entry contained
// in the text.
package lexicon

import "strings"

// Sections are the legal section markers recognised inside a paragraph.
var Sections = []string{
	"FACTS",
	"ARGUMENTS",
	"EVIDENCE",
	"CONCLUSION",
	"RELIEF SOUGHT",
	"DECLARATION",
	"ATTACHMENT",
	"EXHIBIT",
}

// DocumentTypes is the filing vocabulary.
var DocumentTypes = []string{
	// Pleadings
	"COMPLAINT",
	"ANSWER",
	"CROSS-COMPLAINT",
	"REPLY",
	"AMENDED COMPLAINT",
	"AMENDED ANSWER",

	// Motions
	"MOTION",
	"MOTION TO DISMISS",
	"MOTION FOR SUMMARY JUDGMENT",
	"MOTION TO COMPEL",
	"MOTION TO QUASH",
	"MOTION TO STRIKE",
	"MOTION IN LIMINE",

	// Orders
	"ORDER",
	"JUDGMENT",
	"DECREE",
	"RULING",
	"MINUTE ORDER",

	// Discovery
	"INTERROGATORIES",
	"REQUEST FOR ADMISSIONS",
	"REQUEST FOR PRODUCTION",
	"DEPOSITION",
	"SUBPOENA",

	// Briefs
	"BRIEF",
	"MEMORANDUM OF POINTS AND AUTHORITIES",
	"OPPOSITION",
	"REPLY BRIEF",
	"AMICUS BRIEF",

	// Notices
	"NOTICE",
	"NOTICE OF HEARING",
	"NOTICE OF APPEAL",
	"NOTICE OF DEPOSITION",
	"NOTICE OF MOTION",

	// Declarations and affidavits
	"DECLARATION",
	"AFFIDAVIT",
	"VERIFICATION",

	// Evidence
	"EXHIBIT",
	"ATTACHMENT",
	"EVIDENCE",

	// Other
	"PETITION",
	"APPLICATION",
	"STIPULATION",
	"SETTLEMENT AGREEMENT",
	"RELEASE",
	"WAIVER",
}

// CourtTypes is the court vocabulary.
var CourtTypes = []string{
	// Federal
	"UNITED STATES SUPREME COURT",
	"UNITED STATES COURT OF APPEALS",
	"UNITED STATES DISTRICT COURT",
	"UNITED STATES BANKRUPTCY COURT",
	"UNITED STATES TAX COURT",
	"UNITED STATES COURT OF FEDERAL CLAIMS",
	"UNITED STATES COURT OF INTERNATIONAL TRADE",

	// State
	"SUPREME COURT",
	"COURT OF APPEAL",
	"SUPERIOR COURT",
	"DISTRICT COURT",
	"MUNICIPAL COURT",
	"JUSTICE COURT",
	"SMALL CLAIMS COURT",

	// Specialized
	"FAMILY COURT",
	"PROBATE COURT",
	"JUVENILE COURT",
	"TRAFFIC COURT",
	"HOUSING COURT",
	"DRUG COURT",
	"VETERANS COURT",

	// Administrative
	"ADMINISTRATIVE LAW COURT",
	"WORKERS COMPENSATION COURT",
	"TAX COURT",
	"ENVIRONMENTAL COURT",

	// Tribal
	"TRIBAL COURT",
	"NATIVE AMERICAN COURT",
}

// FirstContained returns the first entry of vocab contained in upper,
// which must already be upper-cased.
func FirstContained(vocab []string, upper string) (string, bool) {
	for _, entry := range vocab {
		if strings.Contains(upper, entry) {
			return entry, true
		}
	}
	return "", false
}
