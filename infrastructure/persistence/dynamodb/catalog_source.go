package dynamodb

import (
	"context"
	"encoding/json"
	"fmt"

	"coursemap-backend/domain/catalog"
	"coursemap-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// CatalogSource implements ports.CatalogSource over a single DynamoDB table
// holding course and program items, discriminated by EntityType. The
// requirement trees are stored as the same tagged JSON documents the
// pipeline emits, so both sources share one codec.
type CatalogSource struct {
	client    *dynamodb.Client
	tableName string
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewCatalogSource creates a DynamoDB-backed catalog source.
func NewCatalogSource(client *dynamodb.Client, tableName string, tracer *observability.Tracer, logger *zap.Logger) *CatalogSource {
	return &CatalogSource{
		client:    client,
		tableName: tableName,
		tracer:    tracer,
		logger:    logger,
	}
}

// courseItem is the DynamoDB item shape for a course.
type courseItem struct {
	PK               string   `dynamodbav:"PK"`
	EntityType       string   `dynamodbav:"EntityType"`
	Code             string   `dynamodbav:"Code"`
	Title            string   `dynamodbav:"Title"`
	Description      string   `dynamodbav:"Description"`
	Credits          string   `dynamodbav:"Credits"`
	Faculty          string `dynamodbav:"Faculty"`
	Department       string `dynamodbav:"Department"`
	TermsOffered     string `dynamodbav:"TermsOffered"`
	PrerequisitesRaw string `dynamodbav:"PrerequisitesRaw"`
	CorequisitesRaw  string `dynamodbav:"CorequisitesRaw"`
	Prerequisites    string `dynamodbav:"Prerequisites"` // tagged JSON
	Corequisites     string `dynamodbav:"Corequisites"`  // tagged JSON
}

// programItem is the DynamoDB item shape for a program.
type programItem struct {
	PK         string   `dynamodbav:"PK"`
	EntityType string   `dynamodbav:"EntityType"`
	Name       string   `dynamodbav:"Name"`
	Courses    []string `dynamodbav:"Courses"`
}

// Load scans the catalog table and reconstructs the course and program
// records.
func (s *CatalogSource) Load(ctx context.Context) ([]*catalog.CourseRecord, []*catalog.ProgramRecord, error) {
	var courses []*catalog.CourseRecord
	var programs []*catalog.ProgramRecord

	err := s.tracer.TraceFunction(ctx, "catalog.scan", func(ctx context.Context) error {
		s.tracer.Annotate(ctx, "table", s.tableName)

		filter := expression.Or(
			expression.Name("EntityType").Equal(expression.Value(entityTypeCourse)),
			expression.Name("EntityType").Equal(expression.Value(entityTypeProgram)),
		)
		expr, err := expression.NewBuilder().WithFilter(filter).Build()
		if err != nil {
			return fmt.Errorf("build scan expression: %w", err)
		}

		paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
			TableName:                 &s.tableName,
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		})

		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return fmt.Errorf("scan catalog table: %w", err)
			}

			for _, item := range page.Items {
				entityType := ""
				if err := attributevalue.Unmarshal(item["EntityType"], &entityType); err != nil {
					continue
				}

				switch entityType {
				case entityTypeCourse:
					course, err := s.unmarshalCourse(item)
					if err != nil {
						s.logger.Warn("Skipping malformed course item", zap.Error(err))
						continue
					}
					courses = append(courses, course)

				case entityTypeProgram:
					var pi programItem
					if err := attributevalue.UnmarshalMap(item, &pi); err != nil {
						s.logger.Warn("Skipping malformed program item", zap.Error(err))
						continue
					}
					programs = append(programs, &catalog.ProgramRecord{
						Name:    pi.Name,
						Courses: pi.Courses,
					})
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("Catalog loaded from DynamoDB",
		zap.String("table", s.tableName),
		zap.Int("courses", len(courses)),
		zap.Int("programs", len(programs)),
	)

	return courses, programs, nil
}

const (
	entityTypeCourse  = "COURSE"
	entityTypeProgram = "PROGRAM"
)

func (s *CatalogSource) unmarshalCourse(item map[string]types.AttributeValue) (*catalog.CourseRecord, error) {
	var ci courseItem
	if err := attributevalue.UnmarshalMap(item, &ci); err != nil {
		return nil, err
	}

	course := &catalog.CourseRecord{
		Code:             ci.Code,
		Title:            ci.Title,
		Description:      ci.Description,
		Credits:          ci.Credits,
		Faculty:          ci.Faculty,
		Department:       ci.Department,
		TermsOffered:     ci.TermsOffered,
		PrerequisitesRaw: ci.PrerequisitesRaw,
		CorequisitesRaw:  ci.CorequisitesRaw,
	}

	if ci.Prerequisites != "" {
		if err := json.Unmarshal([]byte(ci.Prerequisites), &course.Prerequisites); err != nil {
			return nil, fmt.Errorf("course %s prerequisites: %w", ci.Code, err)
		}
	}
	if ci.Corequisites != "" {
		if err := json.Unmarshal([]byte(ci.Corequisites), &course.Corequisites); err != nil {
			return nil, fmt.Errorf("course %s corequisites: %w", ci.Code, err)
		}
	}

	return course, nil
}
