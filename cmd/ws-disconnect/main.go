// Package main implements the WebSocket disconnect Lambda handler.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	dynamostore "coursemap-backend/infrastructure/persistence/dynamodb"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

var connections *dynamostore.ConnectionStore

func init() {
	tableName := os.Getenv("CONNECTIONS_TABLE_NAME")
	if tableName == "" {
		log.Fatal("FATAL: CONNECTIONS_TABLE_NAME must be set")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("Unable to load SDK config: %v", err)
	}

	client := dynamodb.NewFromConfig(awsCfg)
	connections = dynamostore.NewConnectionStore(client, tableName, 2*time.Hour)
}

func handler(ctx context.Context, req events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := req.RequestContext.ConnectionID

	if err := connections.Delete(ctx, connectionID); err != nil {
		// The connection is already closed; log and report success so API
		// Gateway doesn't retry.
		log.Printf("ERROR: Failed to remove connection %s: %v", connectionID, err)
	}

	log.Printf("Connection %s disconnected", connectionID)
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

func main() {
	lambda.Start(handler)
}
