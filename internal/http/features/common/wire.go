// Package common holds the wire representations shared by the HTTP features.
// Each stored entity has an explicit, total mapping function to its JSON shape;
// handlers never serialize domain structs directly.
package common

import (
	"time"

	"github.com/AmirejibiIlia/RateBridge/pkg/analytics"
	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
)

// UserResponse is the wire shape of a user. The password hash never leaves
// the domain layer.
type UserResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	CompanyID    *string `json:"company_id"`
	IsSuperAdmin bool    `json:"is_super_admin"`
}

// FromUser maps a user to its wire shape.
func FromUser(u *domain.User) UserResponse {
	resp := UserResponse{
		ID:           u.ID.String(),
		Email:        u.Email,
		IsSuperAdmin: u.IsSuperAdmin,
	}
	if u.CompanyID != nil {
		id := u.CompanyID.String()
		resp.CompanyID = &id
	}
	return resp
}

// CompanyResponse is the wire shape of a company.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	LogoURL   *string   `json:"logo_url"`
	CreatedAt time.Time `json:"created_at"`
}

// FromCompany maps a company to its wire shape.
func FromCompany(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Slug:      c.Slug,
		LogoURL:   c.LogoURL,
		CreatedAt: c.CreatedAt,
	}
}

// QRCodeResponse is the wire shape of a QR code. The public identifier is
// exposed as "uuid" for compatibility with the submission form URLs.
type QRCodeResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	PublicID    string    `json:"uuid"`
	Label       string    `json:"label"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	ImageBase64 *string   `json:"image_base64,omitempty"`
}

// FromQRCode maps a QR code to its wire shape.
func FromQRCode(q *domain.QRCode) QRCodeResponse {
	return QRCodeResponse{
		ID:        q.ID.String(),
		CompanyID: q.CompanyID.String(),
		PublicID:  q.PublicID,
		Label:     q.Label,
		IsActive:  q.IsActive,
		CreatedAt: q.CreatedAt,
	}
}

// QRCodePublicResponse is the anonymous projection of a QR code.
type QRCodePublicResponse struct {
	PublicID    string `json:"uuid"`
	Label       string `json:"label"`
	CompanyName string `json:"company_name"`
	IsActive    bool   `json:"is_active"`
}

// FromQRCodePublicInfo maps the anonymous projection to its wire shape.
func FromQRCodePublicInfo(info *domain.QRCodePublicInfo) QRCodePublicResponse {
	return QRCodePublicResponse{
		PublicID:    info.PublicID,
		Label:       info.Label,
		CompanyName: info.CompanyName,
		IsActive:    info.IsActive,
	}
}

// FeedbackResponse is the wire shape of a feedback row.
type FeedbackResponse struct {
	ID        string    `json:"id"`
	QRCodeID  string    `json:"qr_code_id"`
	CompanyID string    `json:"company_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	IPAddress *string   `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	QRLabel   *string   `json:"qr_label"`
}

// FromFeedback maps a feedback row to its wire shape.
func FromFeedback(f *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        f.ID.String(),
		QRCodeID:  f.QRCodeID.String(),
		CompanyID: f.CompanyID.String(),
		Rating:    f.Rating,
		Comment:   f.Comment,
		IPAddress: f.IPAddress,
		CreatedAt: f.CreatedAt,
		QRLabel:   f.QRLabel,
	}
}

// FromFeedbackList maps a slice of feedback rows, preserving order.
func FromFeedbackList(rows []domain.Feedback) []FeedbackResponse {
	out := make([]FeedbackResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromFeedback(&rows[i]))
	}
	return out
}

// FeedbackStatsResponse is the wire shape of a rating rollup.
type FeedbackStatsResponse struct {
	Total         int            `json:"total"`
	AverageRating *float64       `json:"average_rating"`
	Distribution  map[string]int `json:"distribution"`
}

// FromFeedbackStats maps a rating rollup to its wire shape.
func FromFeedbackStats(s *analytics.FeedbackStats) FeedbackStatsResponse {
	return FeedbackStatsResponse{
		Total:         s.Total,
		AverageRating: s.AverageRating,
		Distribution:  s.Distribution,
	}
}

// CompanyStatsResponse is the wire shape of the dashboard rollup.
type CompanyStatsResponse struct {
	Company       CompanyResponse `json:"company"`
	TotalFeedback int             `json:"total_feedback"`
	AverageRating *float64        `json:"average_rating"`
	TotalQRCodes  int             `json:"total_qr_codes"`
	ActiveQRCodes int             `json:"active_qr_codes"`
}

// FromCompanyStats maps the dashboard rollup to its wire shape.
func FromCompanyStats(s *analytics.CompanyStats) CompanyStatsResponse {
	return CompanyStatsResponse{
		Company:       FromCompany(&s.Company),
		TotalFeedback: s.TotalFeedback,
		AverageRating: s.AverageRating,
		TotalQRCodes:  s.TotalQRCodes,
		ActiveQRCodes: s.ActiveQRCodes,
	}
}

// TimelineEntryResponse is one timeline bucket on the wire: a label plus one
// named counter per rating value.
type TimelineEntryResponse struct {
	Label string `json:"label"`
	R1    int    `json:"r1"`
	R2    int    `json:"r2"`
	R3    int    `json:"r3"`
	R4    int    `json:"r4"`
	R5    int    `json:"r5"`
	R6    int    `json:"r6"`
	R7    int    `json:"r7"`
	R8    int    `json:"r8"`
	R9    int    `json:"r9"`
	R10   int    `json:"r10"`
}

// TimelineResponse is the wire shape of both timeline series.
type TimelineResponse struct {
	Daily  []TimelineEntryResponse `json:"daily"`
	Weekly []TimelineEntryResponse `json:"weekly"`
}

// FromTimeline maps a timeline to its wire shape.
func FromTimeline(tl *analytics.Timeline) TimelineResponse {
	return TimelineResponse{
		Daily:  fromTimelineEntries(tl.Daily),
		Weekly: fromTimelineEntries(tl.Weekly),
	}
}

func fromTimelineEntries(entries []analytics.TimelineEntry) []TimelineEntryResponse {
	out := make([]TimelineEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, TimelineEntryResponse{
			Label: e.Label,
			R1:    e.Counts[0],
			R2:    e.Counts[1],
			R3:    e.Counts[2],
			R4:    e.Counts[3],
			R5:    e.Counts[4],
			R6:    e.Counts[5],
			R7:    e.Counts[6],
			R8:    e.Counts[7],
			R9:    e.Counts[8],
			R10:   e.Counts[9],
		})
	}
	return out
}

// HighlightsResponse is the wire shape of the best/worst feedback extremes.
type HighlightsResponse struct {
	Top3   []FeedbackResponse `json:"top3"`
	Worst3 []FeedbackResponse `json:"worst3"`
}

// FromHighlights maps highlights to their wire shape.
func FromHighlights(h *analytics.Highlights) HighlightsResponse {
	return HighlightsResponse{
		Top3:   FromFeedbackList(h.Top3),
		Worst3: FromFeedbackList(h.Worst3),
	}
}
