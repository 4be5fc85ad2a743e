package dynamodb

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"coursemap-backend/domain/catalog"
	"coursemap-backend/domain/graph"
	"coursemap-backend/domain/session"
	"coursemap-backend/domain/viewstate"
	appErrors "coursemap-backend/pkg/errors"
)

// sessionItem is the DynamoDB item shape for a view session. The graph is
// stored as one JSON document; lookup indexes are rebuilt on read.
type sessionItem struct {
	SessionID string    `dynamodbav:"SessionID"`
	Program   string    `dynamodbav:"Program"`
	Selected  []string  `dynamodbav:"Selected,omitempty"`
	Filter    string    `dynamodbav:"Filter"`
	Graph     string    `dynamodbav:"Graph"` // JSON {nodes, edges}
	CreatedAt time.Time `dynamodbav:"CreatedAt"`
	UpdatedAt time.Time `dynamodbav:"UpdatedAt"`
}

// graphDoc is the stored graph document.
type graphDoc struct {
	Nodes []graph.Node `json:"nodes"`
	Edges []graph.Edge `json:"edges"`
}

// SessionStore persists view sessions in DynamoDB so the HTTP Lambda and
// the WebSocket interact Lambda share one session space across processes.
// Items carry an expireAt TTL matching the session idle timeout.
type SessionStore struct {
	client    *dynamodb.Client
	tableName string
	ttl       time.Duration
}

// NewSessionStore creates a session store on the given table.
func NewSessionStore(client *dynamodb.Client, tableName string, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, tableName: tableName, ttl: ttl}
}

// Save persists a session and refreshes its TTL.
func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	if sess == nil || sess.ID == "" {
		return appErrors.NewValidationError("session must have an ID")
	}

	rec, err := marshalSession(sess)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sess.ID, err)
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal session item %s: %w", sess.ID, err)
	}

	item["PK"] = &types.AttributeValueMemberS{Value: sessionPK(sess.ID)}
	item["SK"] = &types.AttributeValueMemberS{Value: "STATE"}
	item["expireAt"] = &types.AttributeValueMemberN{
		Value: fmt.Sprintf("%d", time.Now().Add(s.ttl).Unix()),
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}

// Get retrieves a session by ID. Missing and TTL-expired-but-unreaped items
// both report not found.
func (s *SessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: sessionPK(id)},
			"SK": &types.AttributeValueMemberS{Value: "STATE"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	if out.Item == nil {
		return nil, appErrors.NewNotFoundError("session " + id)
	}

	// DynamoDB TTL reaping lags; filter on read like the in-memory store.
	if expireAt, ok := out.Item["expireAt"].(*types.AttributeValueMemberN); ok {
		if unix, err := strconv.ParseInt(expireAt.Value, 10, 64); err == nil && time.Now().Unix() > unix {
			return nil, appErrors.NewNotFoundError("session " + id)
		}
	}

	var rec sessionItem
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}

	sess, err := unmarshalSession(rec)
	if err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return sess, nil
}

// Delete removes a session. Deleting an unknown ID is a no-op.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: sessionPK(id)},
			"SK": &types.AttributeValueMemberS{Value: "STATE"},
		},
	})
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// marshalSession flattens a session into its item shape.
func marshalSession(sess *session.Session) (sessionItem, error) {
	doc, err := json.Marshal(graphDoc{Nodes: sess.Graph.Nodes, Edges: sess.Graph.Edges})
	if err != nil {
		return sessionItem{}, err
	}

	return sessionItem{
		SessionID: sess.ID,
		Program:   sess.Program,
		Selected:  sess.State.SelectedIDs(),
		Filter:    string(sess.State.Filter),
		Graph:     string(doc),
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
	}, nil
}

// unmarshalSession rebuilds a session, including the graph's lookup
// indexes, from its item shape.
func unmarshalSession(rec sessionItem) (*session.Session, error) {
	var doc graphDoc
	if err := json.Unmarshal([]byte(rec.Graph), &doc); err != nil {
		return nil, err
	}

	selected := make(map[string]struct{}, len(rec.Selected))
	for _, id := range rec.Selected {
		selected[id] = struct{}{}
	}

	filter := catalog.Category(rec.Filter)
	if filter == "" {
		filter = catalog.CategoryAll
	}

	return &session.Session{
		ID:        rec.SessionID,
		Program:   rec.Program,
		Graph:     graph.FromParts(doc.Nodes, doc.Edges),
		State:     viewstate.State{Selected: selected, Filter: filter},
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}
