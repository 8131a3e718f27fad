package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"

	"fitsynth-backend/internal/bootstrap"
	"fitsynth-backend/internal/shared/config"
	"fitsynth-backend/internal/shared/server/respond"
	"fitsynth-backend/internal/shared/telemetry"
)

var (
	initOnce  sync.Once
	initErr   error
	ginLambda *ginadapter.GinLambdaV2
)

// initApp builds the router once per container. Plan retention is not
// scheduled here; a frozen container cannot run a ticker, so cmd/api owns it.
func initApp() {
	app, err := bootstrap.Build(config.Load())
	if err != nil {
		initErr = err
		return
	}
	ginLambda = ginadapter.NewV2(app.Router)
}

func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		requestID := lambdaRequestID(req)
		telemetry.Error("lambda.bootstrap_failed", map[string]any{
			"request_id": requestID,
			"path":       req.RawPath,
			"err":        initErr,
		})
		return errorResponse(requestID, "bootstrap_failed", "Service failed to start"), nil
	}
	return ginLambda.ProxyWithContext(ctx, req)
}

// lambdaRequestID prefers the caller's X-Request-Id and falls back to the
// API Gateway request id.
func lambdaRequestID(req events.APIGatewayV2HTTPRequest) string {
	for k, v := range req.Headers {
		if http.CanonicalHeaderKey(k) == "X-Request-Id" && v != "" {
			return v
		}
	}
	return req.RequestContext.RequestID
}

func errorResponse(requestID, code, message string) events.APIGatewayV2HTTPResponse {
	body, _ := json.Marshal(respond.ErrorResponse{Error: respond.ErrorBody{Code: code, Message: message}})
	headers := map[string]string{"Content-Type": "application/json"}
	if requestID != "" {
		headers["X-Request-Id"] = requestID
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       string(body),
		Headers:    headers,
	}
}

func main() {
	lambda.Start(handler)
}
