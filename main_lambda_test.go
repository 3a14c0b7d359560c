//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/tidwall/gjson"
)

func TestHandlerRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		ev   events.LambdaFunctionURLRequest
	}{
		{"not json", events.LambdaFunctionURLRequest{Body: "nope"}},
		{"bad base64", events.LambdaFunctionURLRequest{Body: "%%%", IsBase64Encoded: true}},
		{"no snapshot", events.LambdaFunctionURLRequest{Body: `{"weights": {}}`}},
		{"negative weight", events.LambdaFunctionURLRequest{Body: `{"snapshot": {}, "weights": {"exp": -1}}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := handler(context.Background(), tt.ev)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != 400 {
				t.Errorf("status = %d, want 400 (%s)", resp.StatusCode, resp.Body)
			}
		})
	}
}

func TestHandlerRun(t *testing.T) {
	body := `{"snapshot": {"CogM": {"0": {"a": 4}}, "FlagU": [0, 0]}, "timeMs": 10, "seed": 1}`
	resp, err := handler(context.Background(), events.LambdaFunctionURLRequest{
		Body:            base64.StdEncoding.EncodeToString([]byte(body)),
		IsBase64Encoded: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d: %s", resp.StatusCode, resp.Body)
	}
	if got := gjson.Get(resp.Body, "score.buildRate").Float(); got != 4 {
		t.Errorf("buildRate = %v, want 4", got)
	}
	if !gjson.Get(resp.Body, "steps").IsArray() {
		t.Errorf("steps missing: %s", resp.Body)
	}
}
