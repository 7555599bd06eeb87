// Package profile serves the personal-site professional profile.
package profile

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

//go:embed default.json
var defaultProfile []byte

type NameLink struct {
	FirstName string `json:"firstName"`
	URL       string `json:"url"`
}

type Link struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

type Professional struct {
	ProfessionalName   string   `json:"professionalName"`
	Base64Image        string   `json:"base64Image"`
	NameLink           NameLink `json:"nameLink"`
	PrimaryDescription string   `json:"primaryDescription"`
	WorkDescription1   string   `json:"workDescription1"`
	WorkDescription2   string   `json:"workDescription2"`
	LinkTitleText      string   `json:"linkTitleText"`
	LinkedInLink       Link     `json:"linkedInLink"`
	GithubLink         Link     `json:"githubLink"`
}

// Load reads the profile from path, or the embedded default when path is empty.
func Load(path string) (*Professional, error) {
	data := defaultProfile
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read profile: %w", err)
		}
	}

	var p Professional
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if p.ProfessionalName == "" {
		return nil, errors.New("profile has no professionalName")
	}
	return &p, nil
}
