package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Connection is a live WebSocket connection subscribed to a view session.
type Connection struct {
	ConnectionID string    `dynamodbav:"ConnectionID" json:"connection_id"`
	SessionID    string    `dynamodbav:"SessionID" json:"session_id"`
	Endpoint     string    `dynamodbav:"Endpoint" json:"endpoint"`
	ConnectedAt  time.Time `dynamodbav:"ConnectedAt" json:"connected_at"`
}

// ConnectionStore persists WebSocket connections in DynamoDB so the
// interact Lambda can fan out frame updates to every client watching
// the same session. Items carry an expireAt TTL for stale cleanup.
type ConnectionStore struct {
	client    *dynamodb.Client
	tableName string
	ttl       time.Duration
}

// NewConnectionStore creates a connection store on the given table.
func NewConnectionStore(client *dynamodb.Client, tableName string, ttl time.Duration) *ConnectionStore {
	return &ConnectionStore{client: client, tableName: tableName, ttl: ttl}
}

func connectionPK(connectionID string) string {
	return fmt.Sprintf("CONNECTION#%s", connectionID)
}

func sessionPK(sessionID string) string {
	return fmt.Sprintf("SESSION#%s", sessionID)
}

// Put records a new connection.
func (s *ConnectionStore) Put(ctx context.Context, conn Connection) error {
	item, err := attributevalue.MarshalMap(conn)
	if err != nil {
		return fmt.Errorf("marshal connection: %w", err)
	}

	item["PK"] = &types.AttributeValueMemberS{Value: connectionPK(conn.ConnectionID)}
	item["SK"] = &types.AttributeValueMemberS{Value: "METADATA"}
	// GSI1 keys the connection by session for fan-out queries.
	item["GSI1PK"] = &types.AttributeValueMemberS{Value: sessionPK(conn.SessionID)}
	item["GSI1SK"] = &types.AttributeValueMemberS{Value: connectionPK(conn.ConnectionID)}
	item["expireAt"] = &types.AttributeValueMemberN{
		Value: fmt.Sprintf("%d", time.Now().Add(s.ttl).Unix()),
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("save connection: %w", err)
	}
	return nil
}

// Delete removes a connection. Deleting an unknown ID is not an error,
// disconnects can race with TTL expiry.
func (s *ConnectionStore) Delete(ctx context.Context, connectionID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: connectionPK(connectionID)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
	})
	if err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}
	return nil
}

// BySession returns all connections subscribed to a session.
func (s *ConnectionStore) BySession(ctx context.Context, sessionID string) ([]Connection, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		IndexName:              aws.String("session-index"),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: sessionPK(sessionID)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query connections for session %s: %w", sessionID, err)
	}

	connections := make([]Connection, 0, len(out.Items))
	for _, item := range out.Items {
		var conn Connection
		if err := attributevalue.UnmarshalMap(item, &conn); err != nil {
			continue
		}
		connections = append(connections, conn)
	}
	return connections, nil
}
