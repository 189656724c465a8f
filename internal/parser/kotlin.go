// # internal/parser/kotlin.go
package parser

import (
	"log/slog"
	"strings"
	"time"
)

// Kotlin structural keywords.
const (
	kotlinClass   = "class"
	kotlinObject  = "object"
	kotlinImport  = "import"
	kotlinPackage = "package"
)

var kotlinComments = CommentStyle{Line: "//", BlockStart: "/*", BlockEnd: "*/"}

var (
	// package a.b.c
	kotlinPackageGrammar = mustGrammar(`^package\s+(?P<package_name>[0-9A-Za-z.]+)`)
	// import a.b.c or import a.b.*
	kotlinImportGrammar = mustGrammar(`^import\s+(?P<import_path>[0-9A-Za-z.*]+)`)
	// class/object Name, optionally ": Supertype", up to the opening brace.
	// Only the first supertype of a list is captured.
	kotlinEntityGrammar = mustGrammar(`^(?:class|object)\s+(?P<entity_name>[0-9A-Za-z]+)(?:\s+:\s+(?P<inherited_entity_name>[0-9A-Za-z]+))?[^{]*\{`)
)

type KotlinParser struct {
	results Results
	vocab   Vocabulary
}

func NewKotlinParser() *KotlinParser {
	return &KotlinParser{
		results: make(Results),
		vocab:   DefaultVocabulary(),
	}
}

func (p *KotlinParser) Name() string       { return "KOTLIN_PARSER" }
func (p *KotlinParser) Language() Language { return LangKotlin }
func (p *KotlinParser) Results() Results   { return p.results }

func (p *KotlinParser) GenerateFileResult(ctx *Context, fileName, absolutePath, content string) {
	slog.Debug("generating file result", "file", fileName, "language", string(LangKotlin))

	relative := ctx.RelativePath(absolutePath)
	result := &FileResult{
		UniqueName:   relative,
		DisplayName:  fileName,
		AbsolutePath: absolutePath,
		RelativePath: relative,
		ScannedBy:    p.Name(),
		Language:     LangKotlin,
		Tokens:       Tokenize(content, p.vocab),
		ScannedAt:    time.Now(),
	}

	p.addPackageName(ctx, result)
	p.addImports(ctx, result)
	p.results.Add(result)
}

func (p *KotlinParser) AfterFileResults(ctx *Context) {}

func (p *KotlinParser) GenerateEntityResults(ctx *Context) {
	slog.Debug("generating entity results", "language", string(LangKotlin))

	for _, file := range p.results.FileResults() {
		entities := file.entityScopes(
			[]string{kotlinClass, kotlinObject},
			kotlinEntityGrammar, kotlinComments, p.vocab,
		)
		for _, entity := range entities {
			p.addInheritance(ctx, entity)
			p.addEntityImports(entity)
			entity.UniqueName = uniqueEntityName(entity.ModuleName, entity.EntityName)
			p.results.Add(entity)
		}
	}
}

// addPackageName scans for the package statement and records the last match
// as the file's module name. The narrow tokenizer keeps the dotted path in
// one piece.
func (p *KotlinParser) addPackageName(ctx *Context, result *FileResult) {
	words := TokenizeWords(StripComments(result.Tokens, kotlinComments))

	for a := range scanAnchors(words, kotlinPackage) {
		caps, ok := kotlinPackageGrammar.Match(a.readAheadString())
		if !ok {
			ctx.countMiss(LangKotlin, a)
			continue
		}
		result.ModuleName = caps[capPackageName]
		ctx.countHit(LangKotlin)
		slog.Debug("package found", "package", result.ModuleName, "file", result.DisplayName)
	}
}

// addImports appends one entry per matched import statement, in source
// order. Duplicates are kept; only ignored dependencies are dropped.
func (p *KotlinParser) addImports(ctx *Context, result *FileResult) {
	tokens := Tokenize(StripComments(result.Tokens, kotlinComments), p.vocab)

	for a := range scanAnchors(tokens, kotlinImport) {
		caps, ok := kotlinImportGrammar.Match(a.readAheadString())
		if !ok {
			ctx.countMiss(LangKotlin, a)
			continue
		}
		ctx.countHit(LangKotlin)

		dependency := caps[capImportPath]
		if ctx.Ignored(dependency) {
			slog.Debug("ignoring dependency", "from", result.UniqueName, "to", dependency)
			continue
		}
		result.Imports = append(result.Imports, dependency)
	}
}

// addInheritance re-scans the entity's own token slice. A declaration
// without a colon clause is a valid match that records nothing; at most one
// inherited name is captured per declaration occurrence.
func (p *KotlinParser) addInheritance(ctx *Context, entity *EntityResult) {
	for a := range scanAnchors(entity.Tokens, kotlinClass) {
		caps, ok := kotlinEntityGrammar.Match(a.readAheadString())
		if !ok {
			ctx.countMiss(LangKotlin, a)
			continue
		}
		if inherited := caps[capInheritedName]; inherited != "" {
			ctx.countHit(LangKotlin)
			entity.Inherits = append(entity.Inherits, inherited)
			slog.Debug("found inheritance", "entity", entity.EntityName, "inherits", inherited)
		}
	}
}

// addEntityImports propagates the parent's imports whose simple name occurs
// as a substring of any entity token. Over-inclusive by design; each import
// is appended at most once.
func (p *KotlinParser) addEntityImports(entity *EntityResult) {
	for _, imported := range entity.Parent.Imports {
		parts := strings.Split(imported, ".")
		simpleName := parts[len(parts)-1]
		for _, token := range entity.Tokens {
			if strings.Contains(token, simpleName) && !contains(entity.Imports, imported) {
				entity.Imports = append(entity.Imports, imported)
			}
		}
	}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
