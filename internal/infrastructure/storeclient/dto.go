package storeclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

// candidateDTO is the store's candidate shape. Numbers may arrive as JSON
// numbers, numeric strings (SQL decimals) or null.
type candidateDTO struct {
	ID                   flexString          `json:"id,omitempty"`
	Name                 string              `json:"name"`
	Phone                string              `json:"phone"`
	Email                string              `json:"email"`
	Salary               flexNumber          `json:"salary"`
	ExpectedCTC          flexNumber          `json:"expected_ctc"`
	Notice               flexNumber          `json:"notice"`
	TotalExperienceYears flexNumber          `json:"totalExperienceYears"`
	Location             string              `json:"location"`
	CVURL                string              `json:"cvUrl"`
	CurrentCompanyName   string              `json:"currentCompanyName"`
	Skills               []string            `json:"skills"`
	Education            string              `json:"education"`
	JobTitle             string              `json:"jobTitle"`
	Source               string              `json:"source"`
	CustomFields         domain.CustomFields `json:"customFields,omitempty"`
	CreatedAt            *domain.Timestamp   `json:"createdAt,omitempty"`
}

func fromDomain(c domain.Candidate) candidateDTO {
	skills := c.Skills
	if skills == nil {
		skills = []string{}
	}
	return candidateDTO{
		ID:                   flexString(c.ID),
		Name:                 c.Name,
		Phone:                c.Phone,
		Email:                c.Email,
		Salary:               flexNumber{c.Salary},
		ExpectedCTC:          flexNumber{c.ExpectedCTC},
		Notice:               flexNumber{c.Notice},
		TotalExperienceYears: flexNumber{c.TotalExperienceYears},
		Location:             c.Location,
		CVURL:                c.CVURL,
		CurrentCompanyName:   c.CurrentCompanyName,
		Skills:               skills,
		Education:            c.Education,
		JobTitle:             c.JobTitle,
		Source:               c.Source,
		CustomFields:         c.CustomFields,
	}
}

func (d candidateDTO) toDomain() domain.Candidate {
	skills := make([]string, 0, len(d.Skills))
	for _, s := range d.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return domain.Candidate{
		ID:                   string(d.ID),
		Name:                 d.Name,
		Phone:                d.Phone,
		Email:                d.Email,
		Salary:               d.Salary.v,
		ExpectedCTC:          d.ExpectedCTC.v,
		Notice:               d.Notice.v,
		TotalExperienceYears: d.TotalExperienceYears.v,
		Location:             d.Location,
		CVURL:                d.CVURL,
		CurrentCompanyName:   d.CurrentCompanyName,
		Skills:               skills,
		Education:            d.Education,
		JobTitle:             d.JobTitle,
		Source:               d.Source,
		CustomFields:         d.CustomFields,
		CreatedAt:            d.CreatedAt,
	}
}

type selectionsDTO struct {
	CandidateID     flexString             `json:"candidateId"`
	FieldVisibility domain.FieldVisibility `json:"fieldVisibility"`
	FieldOrder      domain.FieldOrder      `json:"fieldOrder"`
}

func (d selectionsDTO) toDomain(fallbackID string) domain.RecipientSelections {
	id := string(d.CandidateID)
	if id == "" {
		id = fallbackID
	}
	return domain.RecipientSelections{
		CandidateID:     id,
		FieldVisibility: d.FieldVisibility.Clone(),
		FieldOrder:      d.FieldOrder.Clone(),
	}
}

// flexNumber decodes a nullable number sent either bare or quoted.
type flexNumber struct {
	v *float64
}

func (n flexNumber) MarshalJSON() ([]byte, error) {
	if n.v == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.v)
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		n.v = nil
		return nil
	}
	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if strings.TrimSpace(raw) == "" {
			n.v = nil
			return nil
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("number: %w", err)
	}
	n.v = &f
	return nil
}

// flexString accepts ids sent as strings or numbers.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*s = flexString(num.String())
	return nil
}
