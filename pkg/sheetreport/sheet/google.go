package sheet

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleService implements Service on the Google Sheets v4 API.
type GoogleService struct {
	api *sheets.Service
}

// NewGoogleService authenticates with a service-account JSON key file.
func NewGoogleService(ctx context.Context, credentialsFile string) (*GoogleService, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	api, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	return &GoogleService{api: api}, nil
}

func (s *GoogleService) Get(ctx context.Context, spreadsheetID, rng string) ([][]any, error) {
	resp, err := s.api.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (s *GoogleService) Update(ctx context.Context, spreadsheetID, rng, valueInputOption string, values [][]any) error {
	body := &sheets.ValueRange{Range: rng, Values: values}
	_, err := s.api.Spreadsheets.Values.Update(spreadsheetID, rng, body).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	return err
}
