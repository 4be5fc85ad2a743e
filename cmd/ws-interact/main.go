// Package main implements the WebSocket interaction Lambda. It applies an
// interaction event to a view session and fans the recomputed frame out to
// every client subscribed to that session.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"coursemap-backend/application/services"
	"coursemap-backend/domain/catalog"
	"coursemap-backend/domain/viewstate"
	"coursemap-backend/infrastructure/config"
	"coursemap-backend/infrastructure/di"
	dynamostore "coursemap-backend/infrastructure/persistence/dynamodb"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

var (
	container   *di.Container
	connections *dynamostore.ConnectionStore
	awsCfg      aws.Config
)

// interactRequest is the WebSocket message body.
type interactRequest struct {
	SessionID   string               `json:"session_id"`
	Interaction services.Interaction `json:"interaction"`
}

// frameUpdate is the message pushed to subscribers.
type frameUpdate struct {
	Type      string                `json:"type"`
	SessionID string                `json:"session_id"`
	Program   string                `json:"program,omitempty"`
	Selected  []string              `json:"selected"`
	Filter    catalog.Category      `json:"filter"`
	Frame     viewstate.Frame       `json:"frame"`
	Course    *catalog.CourseRecord `json:"course,omitempty"`
	Timestamp int64                 `json:"timestamp"`
}

func init() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// Sessions are created in the HTTP Lambda's process; without a shared
	// DynamoDB session table every Apply here would miss.
	if cfg.SessionsTable == "" {
		log.Fatal("SESSIONS_TABLE is required for the interact handler")
	}

	container, err = di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	if err := container.Catalogs.Load(ctx); err != nil {
		log.Fatalf("Initial catalog load failed: %v", err)
	}

	tableName := os.Getenv("CONNECTIONS_TABLE_NAME")
	if tableName == "" {
		tableName = cfg.ConnectionsTable
	}

	awsCfg, err = awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("Unable to load SDK config: %v", err)
	}

	client := dynamodb.NewFromConfig(awsCfg)
	connections = dynamostore.NewConnectionStore(client, tableName, 2*time.Hour)
}

// managementClient builds an API Gateway Management client for the callback
// endpoint of the current stage.
func managementClient(endpoint string) *apigatewaymanagementapi.Client {
	return apigatewaymanagementapi.NewFromConfig(awsCfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s", endpoint))
	})
}

func handler(ctx context.Context, req events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	var request interactRequest
	if err := json.Unmarshal([]byte(req.Body), &request); err != nil {
		log.Printf("WARN: Malformed interaction message: %v", err)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
	}
	if request.SessionID == "" {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
	}

	result, err := container.Sessions.Apply(ctx, request.SessionID, request.Interaction)
	if err != nil {
		container.Logger.Warn("Interaction failed",
			zap.String("sessionID", request.SessionID),
			zap.String("type", request.Interaction.Type),
			zap.Error(err),
		)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
	}

	update := frameUpdate{
		Type:      "frame_update",
		SessionID: request.SessionID,
		Program:   result.Session.Program,
		Selected:  result.Session.State.SelectedIDs(),
		Filter:    result.Session.State.Filter,
		Frame:     result.Frame,
		Course:    result.Course,
		Timestamp: time.Now().Unix(),
	}

	payload, err := json.Marshal(update)
	if err != nil {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}

	subscribers, err := connections.BySession(ctx, request.SessionID)
	if err != nil {
		container.Logger.Error("Failed to list subscribers",
			zap.String("sessionID", request.SessionID),
			zap.Error(err),
		)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}

	endpoint := req.RequestContext.DomainName + "/" + req.RequestContext.Stage
	client := managementClient(endpoint)

	for _, conn := range subscribers {
		_, err := client.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
			ConnectionId: aws.String(conn.ConnectionID),
			Data:         payload,
		})
		if err != nil {
			var gone *apigwtypes.GoneException
			if errors.As(err, &gone) {
				// Stale connection; drop it and keep broadcasting.
				_ = connections.Delete(ctx, conn.ConnectionID)
				continue
			}
			container.Logger.Warn("Failed to push frame update",
				zap.String("connectionID", conn.ConnectionID),
				zap.Error(err),
			)
		}
	}

	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

func main() {
	lambda.Start(handler)
}
