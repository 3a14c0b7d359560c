//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/tidwall/gjson"
)

// maxBudgetMs keeps one invocation well inside the function timeout.
const maxBudgetMs = 10000

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	if !gjson.Valid(body) {
		return errResp(400, "invalid JSON body")
	}
	snapshot := gjson.Get(body, "snapshot")
	if !snapshot.IsObject() {
		return errResp(400, "missing snapshot field")
	}

	var w Weights
	if raw := gjson.Get(body, "weights"); raw.Exists() {
		if err := json.Unmarshal([]byte(raw.Raw), &w); err != nil {
			return errResp(400, "invalid weights: "+err.Error())
		}
	} else {
		w = Weights{BuildRate: 1, Exp: 1, Flaggy: 1}
	}
	if w.BuildRate < 0 || w.Exp < 0 || w.Flaggy < 0 {
		return errResp(400, "weights must be non-negative")
	}

	budget := int(gjson.Get(body, "timeMs").Int())
	if budget > maxBudgetMs {
		budget = maxBudgetMs
	}
	req := Request{
		Snapshot: snapshot.Raw,
		Weights:  w,
		TimeMs:   budget,
		Seed:     gjson.Get(body, "seed").Uint(),
	}
	r, err := Run(ctx, req, DefaultConfig())
	if errors.Is(err, errNotFound) {
		return errResp(422, err.Error())
	}
	if err != nil {
		return errResp(500, err.Error())
	}

	respJSON, _ := json.Marshal(r)
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
