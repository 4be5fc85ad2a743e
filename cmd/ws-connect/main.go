// Package main implements the WebSocket connect Lambda handler. Clients
// connect with a session_id query parameter to subscribe to a view session.
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
	sessionID, ok := req.QueryStringParameters["session_id"]
	if !ok || sessionID == "" {
		log.Println("WARN: Connection request missing session_id")
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
	}

	conn := dynamostore.Connection{
		ConnectionID: req.RequestContext.ConnectionID,
		SessionID:    sessionID,
		Endpoint:     req.RequestContext.DomainName + "/" + req.RequestContext.Stage,
		ConnectedAt:  time.Now(),
	}

	if err := connections.Put(ctx, conn); err != nil {
		log.Printf("ERROR: Failed to save connection: %v", err)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}

	log.Printf("Connection %s subscribed to session %s", conn.ConnectionID, sessionID)
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

func main() {
	lambda.Start(handler)
}
