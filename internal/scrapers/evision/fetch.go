package evision

import (
	"context"

	"evision-results/internal/results"
)

const report_fetch = "fetch"

// Page logs in and returns the html of the results page.
func Page(ctx context.Context, client *Client, username, password string) (string, error) {
	err := client.Login(ctx, username, password)
	if err != nil {
		return "", err
	}
	return client.ResultsPage(ctx)
}

// Fetch logs in, downloads the results page and extracts the results on it.
func Fetch(ctx context.Context, client *Client, username, password string) ([]results.Result, error) {
	page, err := Page(ctx, client, username, password)
	if err != nil {
		return nil, err
	}
	rs, err := results.Extract(page)
	if err != nil {
		client.tel.ReportBroken(report_fetch, err)
		return nil, err
	}
	client.tel.ReportCount(report_fetch, int64(len(rs)))
	return rs, nil
}
