package graph

import (
	"coursemap-backend/domain/catalog"

	"go.uber.org/zap"
)

// Builder converts a display set of course codes into a renderable graph.
// It holds no state between calls: each Build is a fresh transformation of
// (catalog, display set).
type Builder struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewBuilder creates a builder bound to a catalog.
func NewBuilder(cat *catalog.Catalog, logger *zap.Logger) *Builder {
	return &Builder{
		catalog: cat,
		logger:  logger,
	}
}

// Build emits a course node for every catalogued code in the display set,
// then walks each course's prerequisite and corequisite trees, synthesizing
// junction nodes for logical structure. Unknown codes are skipped with a
// warning. Node and edge collections are deduplicated by ID, first write
// wins.
func (b *Builder) Build(displayCodes []string) *Graph {
	pass := &buildPass{
		builder: b,
		nodes:   make(map[string]struct{}),
		edges:   make(map[string]struct{}),
	}

	for _, code := range dedupe(displayCodes) {
		course, ok := b.catalog.Lookup(code)
		if !ok {
			b.logger.Warn("Display code not in catalog, skipping",
				zap.String("code", code),
			)
			continue
		}

		pass.ensureCourseNode(code)

		// One ordinal counter per (course, relation) requirement tree;
		// walk order is fixed, so keys are stable across rebuilds.
		prereqOrdinal := 0
		for _, req := range course.Prerequisites {
			pass.emit(req, code, RelationPrereq, code, &prereqOrdinal)
		}

		coreqOrdinal := 0
		for _, req := range course.Corequisites {
			pass.emit(req, code, RelationCoreq, code, &coreqOrdinal)
		}
	}

	return newGraph(pass.nodeList, pass.edgeList)
}

// buildPass accumulates one Build invocation's collections.
type buildPass struct {
	builder *Builder

	nodes    map[string]struct{}
	nodeList []Node
	edges    map[string]struct{}
	edgeList []Edge
}

// emit translates one requirement node into graph nodes and edges, pointing
// everything it creates at targetID.
func (p *buildPass) emit(req catalog.Requirement, targetID string, relation Relation, owner string, ordinal *int) {
	switch node := req.(type) {
	case catalog.CourseRef:
		if _, ok := p.builder.catalog.Lookup(node.Code); !ok {
			p.builder.logger.Warn("Dangling course reference, skipping",
				zap.String("code", node.Code),
				zap.String("requiredBy", owner),
			)
			return
		}
		p.ensureCourseNode(node.Code)
		p.addEdge(Edge{From: node.Code, To: targetID, Relation: relation})

	case catalog.LogicalGroup:
		kind := KindAndJunction
		if node.Operator == catalog.OperatorOr {
			kind = KindOrJunction
		}
		junctionID := p.allocate(Node{Kind: kind}, owner, relation, ordinal)
		p.addEdge(Edge{From: junctionID, To: targetID, Relation: relation})
		for _, condition := range node.Conditions {
			p.emit(condition, junctionID, relation, owner, ordinal)
		}

	case catalog.Textual:
		leafID := p.allocate(Node{Kind: KindTextual, Text: node.Text}, owner, relation, ordinal)
		p.addEdge(Edge{From: leafID, To: targetID, Relation: relation})

	case catalog.NOfList:
		// "One of N" is a plain OR; only genuine N-of-lists keep the count.
		junction := Node{Kind: KindNOfList, Count: node.Count}
		if node.Count == 1 {
			junction = Node{Kind: KindOrJunction}
		}
		junctionID := p.allocate(junction, owner, relation, ordinal)
		p.addEdge(Edge{From: junctionID, To: targetID, Relation: relation})
		for _, condition := range node.Conditions {
			p.emit(condition, junctionID, relation, owner, ordinal)
		}

	default:
		p.builder.logger.Warn("Unhandled requirement variant during build",
			zap.Any("requirement", req),
			zap.String("owner", owner),
		)
	}
}

// ensureCourseNode adds a course node if absent. The category is fixed by
// whichever path creates the node first, though classification is a pure
// function of the code so every path agrees.
func (p *buildPass) ensureCourseNode(code string) {
	p.addNode(Node{
		ID:       code,
		Kind:     KindCourse,
		Code:     code,
		Category: catalog.Classify(code),
	})
}

// allocate assigns a synthetic node its structured key, adds it, and
// returns its ID.
func (p *buildPass) allocate(node Node, owner string, relation Relation, ordinal *int) string {
	key := Key{Owner: owner, Relation: relation, Kind: node.Kind, Ordinal: *ordinal}
	*ordinal++

	node.ID = key.String()
	p.addNode(node)
	return node.ID
}

// addNode inserts a node unless its ID is taken. Keys are constructed to be
// unique per pass, so a collision means a bug upstream; keep the first node
// and log the duplicate.
func (p *buildPass) addNode(node Node) {
	if _, exists := p.nodes[node.ID]; exists {
		if node.Kind != KindCourse {
			p.builder.logger.Warn("Duplicate node ID dropped",
				zap.String("id", node.ID),
				zap.String("kind", string(node.Kind)),
			)
		}
		return
	}
	p.nodes[node.ID] = struct{}{}
	p.nodeList = append(p.nodeList, node)
}

// addEdge inserts an edge unless its ID is taken. Duplicates here are
// normal: the same dependency is often reached along several recursive
// paths.
func (p *buildPass) addEdge(edge Edge) {
	id := edge.ID()
	if _, exists := p.edges[id]; exists {
		p.builder.logger.Debug("Duplicate edge dropped", zap.String("id", id))
		return
	}
	p.edges[id] = struct{}{}
	p.edgeList = append(p.edgeList, edge)
}

// dedupe preserves first occurrences of the display codes.
func dedupe(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
