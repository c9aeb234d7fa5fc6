package dashboard

import (
	"fmt"
	"time"

	"github.com/sihproto/verifyboard/internal/datagrid"
	"golang.org/x/text/language"
)

const (
	ColumnID       = "id"
	ColumnSubject  = "subject"
	ColumnCheck    = "check"
	ColumnScore    = "score"
	ColumnStatus   = "status"
	ColumnVerified = "verified"
	ColumnAt       = "at"
)

// AuditRecord is one row of the verification audit trail.
type AuditRecord struct {
	ID       string
	Subject  string
	Check    string
	Status   string
	Score    float64
	Verified bool
	At       time.Time
}

// Translator resolves display text for the active language.
type Translator interface {
	Translate(key string, fallback ...string) string
}

// AuditColumns returns the audit trail columns with labels and cell text in the
// translator's current language.
func AuditColumns(tr Translator) []datagrid.Column[AuditRecord] {
	label := func(key string) string {
		return tr.Translate("audit.columns."+key, key)
	}

	return []datagrid.Column[AuditRecord]{
		{
			Key:   ColumnID,
			Label: label(ColumnID),
			Value: func(r AuditRecord) any { return r.ID },
			Width: 8,
		},
		{
			Key:      ColumnSubject,
			Label:    label(ColumnSubject),
			Sortable: true,
			Value:    func(r AuditRecord) any { return r.Subject },
			Width:    20,
		},
		{
			Key:      ColumnCheck,
			Label:    label(ColumnCheck),
			Sortable: true,
			Value:    func(r AuditRecord) any { return r.Check },
			Render: func(v any, r AuditRecord) string {
				return tr.Translate("audit.check."+r.Check, r.Check)
			},
			Width: 14,
		},
		{
			Key:      ColumnScore,
			Label:    label(ColumnScore),
			Sortable: true,
			Value:    func(r AuditRecord) any { return r.Score },
			Render: func(v any, r AuditRecord) string {
				return fmt.Sprintf("%.2f", r.Score)
			},
			Width: 6,
		},
		{
			Key:      ColumnStatus,
			Label:    label(ColumnStatus),
			Sortable: true,
			Value:    func(r AuditRecord) any { return r.Status },
			Render: func(v any, r AuditRecord) string {
				return tr.Translate("audit.status."+r.Status, r.Status)
			},
			Width: 10,
		},
		{
			Key:      ColumnVerified,
			Label:    label(ColumnVerified),
			Sortable: true,
			Value:    func(r AuditRecord) any { return r.Verified },
			Render: func(v any, r AuditRecord) string {
				if r.Verified {
					return tr.Translate("common.yes", "yes")
				}
				return tr.Translate("common.no", "no")
			},
			Width: 4,
		},
		{
			Key:      ColumnAt,
			Label:    label(ColumnAt),
			Sortable: true,
			Value:    func(r AuditRecord) any { return r.At },
			Render: func(v any, r AuditRecord) string {
				return r.At.UTC().Format("2006-01-02 15:04")
			},
			Width: 16,
		},
	}
}

// NewAuditGrid builds the audit trail grid for the translator's current language.
func NewAuditGrid(tr Translator, collation language.Tag) (*datagrid.Grid[AuditRecord], error) {
	return datagrid.New(&datagrid.Config[AuditRecord]{
		Columns:   AuditColumns(tr),
		RowKey:    func(r AuditRecord) string { return r.ID },
		Collation: collation,
	})
}

// SampleAudit returns the fixed demo audit trail.
func SampleAudit() []AuditRecord {
	base := time.Date(2025, time.September, 12, 9, 30, 0, 0, time.UTC)
	at := func(minutes int) time.Time {
		return base.Add(time.Duration(minutes) * time.Minute)
	}

	return []AuditRecord{
		{ID: "AV-1001", Subject: "Priya Sharma", Check: "face", Status: "verified", Score: 0.97, Verified: true, At: at(0)},
		{ID: "AV-1002", Subject: "Arjun Mehta", Check: "liveness", Status: "flagged", Score: 0.41, At: at(3)},
		{ID: "AV-1003", Subject: "Harpreet Kaur", Check: "document", Status: "verified", Score: 0.92, Verified: true, At: at(7)},
		{ID: "AV-1004", Subject: "Rohan Das", Check: "fingerprint", Status: "pending", Score: 0.66, At: at(12)},
		{ID: "AV-1005", Subject: "Ananya Iyer", Check: "face", Status: "rejected", Score: 0.18, At: at(15)},
		{ID: "AV-1006", Subject: "Gurpreet Singh", Check: "liveness", Status: "verified", Score: 0.89, Verified: true, At: at(21)},
		{ID: "AV-1007", Subject: "Kavya Reddy", Check: "document", Status: "flagged", Score: 0.52, At: at(26)},
		{ID: "AV-1008", Subject: "Imran Khan", Check: "face", Status: "verified", Score: 0.95, Verified: true, At: at(30)},
		{ID: "AV-1009", Subject: "Sneha Patil", Check: "fingerprint", Status: "verified", Score: 0.88, Verified: true, At: at(34)},
		{ID: "AV-1010", Subject: "Vikram Joshi", Check: "liveness", Status: "pending", Score: 0.71, At: at(41)},
		{ID: "AV-1011", Subject: "Meera Nair", Check: "document", Status: "verified", Score: 0.9, Verified: true, At: at(45)},
		{ID: "AV-1012", Subject: "Aditya Rao", Check: "face", Status: "rejected", Score: 0.23, At: at(52)},
	}
}
