// # internal/parser/swift.go
package parser

import (
	"log/slog"
	"strings"
	"time"
)

// Swift structural keywords.
const (
	swiftClass     = "class"
	swiftStruct    = "struct"
	swiftEnum      = "enum"
	swiftProtocol  = "protocol"
	swiftExtension = "extension"
)

var swiftEntityKeywords = []string{swiftClass, swiftStruct, swiftEnum, swiftProtocol}

var swiftComments = CommentStyle{Line: "//", BlockStart: "/*", BlockEnd: "*/"}

var (
	// class/struct/enum/protocol Name, optional colon clause, up to the body.
	swiftEntityGrammar = mustGrammar(`^(?:class|struct|enum|protocol)\s+(?P<entity_name>[0-9A-Za-z.]+)(?:\s+:)?[^{]*\{`)
	// Same anchors with a mandatory supertype; only the first one counts.
	swiftInheritanceGrammar = mustGrammar(`^(?:class|struct|enum|protocol)\s+(?P<entity_name>[0-9A-Za-z.]+)\s+:\s+(?P<inherited_entity_name>[0-9A-Za-z.]+)[^{]*\{`)
	// extension Name { ... }
	swiftExtensionGrammar = mustGrammar(`^extension\s+(?P<entity_name>[0-9A-Za-z]+)[^{]*\{`)
)

// swiftDeclarationModifiers are keyword occurrences that anchor a scope scan
// but never name an entity (e.g. "class func", "enum case let").
var swiftDeclarationModifiers = map[string]bool{
	"let":  true,
	"var":  true,
	"func": true,
}

// SwiftParser extracts entities and heuristic file-to-file dependencies.
// Swift has no import statements between project files, so imports are
// inferred from entity names occurring in other files' token streams.
type SwiftParser struct {
	results Results
	vocab   Vocabulary
}

func NewSwiftParser() *SwiftParser {
	return &SwiftParser{
		results: make(Results),
		vocab:   DefaultVocabulary(),
	}
}

func (p *SwiftParser) Name() string       { return "SWIFT_PARSER" }
func (p *SwiftParser) Language() Language { return LangSwift }
func (p *SwiftParser) Results() Results   { return p.results }

func (p *SwiftParser) GenerateFileResult(ctx *Context, fileName, absolutePath, content string) {
	slog.Debug("generating file result", "file", fileName, "language", string(LangSwift))

	relative := ctx.RelativePath(absolutePath)
	result := &FileResult{
		UniqueName:   relative,
		DisplayName:  fileName,
		AbsolutePath: absolutePath,
		RelativePath: relative,
		// No package statements in Swift; the analysis-relative path
		// doubles as the module name.
		ModuleName: relative,
		ScannedBy:  p.Name(),
		Language:   LangSwift,
		Tokens:     Tokenize(content, p.vocab),
		ScannedAt:  time.Now(),
	}
	p.results.Add(result)
}

// AfterFileResults wires file-to-file dependencies: a file that mentions an
// entity declared in another file imports that file.
func (p *SwiftParser) AfterFileResults(ctx *Context) {
	slog.Debug("adding imports to file results", "language", string(LangSwift))

	entities := p.extractEntities(ctx)

	for _, entity := range entities {
		for _, file := range p.results.FileResults() {
			if !contains(file.Tokens, entity.EntityName) {
				continue
			}
			dependency := entity.Parent.RelativePath
			if dependency == file.RelativePath || contains(file.Imports, dependency) {
				continue
			}
			if ctx.Ignored(dependency) {
				slog.Debug("ignoring dependency", "from", file.UniqueName, "to", dependency)
				continue
			}
			file.Imports = append(file.Imports, dependency)
		}
	}
}

func (p *SwiftParser) GenerateEntityResults(ctx *Context) {
	slog.Debug("generating entity results", "language", string(LangSwift))

	entities := p.extractEntities(ctx)
	for _, entity := range entities {
		// Swift entities are keyed by their bare name; there is no
		// package qualifier to disambiguate them.
		entity.UniqueName = entity.EntityName
		p.results.Add(entity)
	}

	p.addEntityImports(ctx)
	p.mergeExtensions()
}

// extractEntities runs the scope pipeline over every file result and
// attaches inheritance to each found entity.
func (p *SwiftParser) extractEntities(ctx *Context) []*EntityResult {
	var all []*EntityResult
	for _, file := range p.results.FileResults() {
		entities := file.entityScopes(swiftEntityKeywords, swiftEntityGrammar, swiftComments, p.vocab)
		for _, entity := range entities {
			if swiftDeclarationModifiers[entity.EntityName] {
				continue
			}
			p.addInheritance(ctx, entity)
			all = append(all, entity)
		}
	}
	return all
}

func (p *SwiftParser) addInheritance(ctx *Context, entity *EntityResult) {
	for a := range scanAnchors(entity.Tokens, swiftEntityKeywords...) {
		caps, ok := swiftInheritanceGrammar.Match(a.readAheadString())
		if !ok {
			ctx.countMiss(LangSwift, a)
			continue
		}
		if inherited := caps[capInheritedName]; inherited != "" {
			ctx.countHit(LangSwift)
			entity.Inherits = append(entity.Inherits, inherited)
		}
	}
}

// addEntityImports links entities to each other by name occurrence inside
// their token slices.
func (p *SwiftParser) addEntityImports(ctx *Context) {
	entityResults := p.results.EntityResults()
	names := make(map[string]bool, len(entityResults))
	for _, e := range entityResults {
		names[e.EntityName] = true
	}

	for _, entity := range entityResults {
		for _, token := range entity.Tokens {
			// A token that occurs inside the entity's own name never counts
			// as a dependency, not even on a shorter-named entity.
			if !names[token] || strings.Contains(entity.EntityName, token) || contains(entity.Imports, token) {
				continue
			}
			if ctx.Ignored(token) {
				slog.Debug("ignoring dependency", "from", entity.EntityName, "to", token)
				continue
			}
			entity.Imports = append(entity.Imports, token)
		}
	}
}

// mergeExtensions appends each extension block's tokens to the extended
// entity so later passes see the full surface of the type.
func (p *SwiftParser) mergeExtensions() {
	for _, file := range p.results.FileResults() {
		extensions := file.entityScopes([]string{swiftExtension}, swiftExtensionGrammar, swiftComments, p.vocab)
		for _, extension := range extensions {
			entity, ok := p.results.ByEntityName(extension.EntityName)
			if !ok {
				continue
			}
			entity.Tokens = append(entity.Tokens, extension.Tokens...)
			slog.Debug("merged extension", "entity", entity.EntityName, "file", file.DisplayName)
		}
	}
}
