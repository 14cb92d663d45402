package docs_test

import (
	"bufio"
	"regexp"
	"strings"
	"testing"

	"github.com/etnz/folio/cmd"
	"github.com/etnz/folio/docs"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	readme, err := docs.GetTopic("readme")
	if err != nil {
		t.Fatalf("failed to read readme: %v", err)
	}

	var listed []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(strings.NewReader(readme))
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); len(m) > 1 {
			listed = append(listed, strings.TrimSpace(m[1]))
		}
	}

	all, err := docs.GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() failed: %v", err)
	}
	inReadme := make(map[string]bool)
	for _, topic := range listed {
		inReadme[topic] = true
		if _, err := docs.GetTopic(topic); err != nil {
			t.Errorf("topic %q is listed in readme.md but cannot be loaded: %v", topic, err)
		}
	}
	for _, topic := range all {
		if !inReadme[topic] {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

// TestDatasetExamples decodes every "json dataset" block of the manual.
func TestDatasetExamples(t *testing.T) {
	all, err := docs.GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() failed: %v", err)
	}
	found := 0
	for _, topic := range all {
		content, err := docs.GetTopic(topic)
		if err != nil {
			t.Fatal(err)
		}
		for _, block := range datasetBlocks(content) {
			found++
			ds, err := cmd.DecodeDataset(strings.NewReader(block))
			if err != nil {
				t.Errorf("topic %q: invalid dataset example: %v", topic, err)
				continue
			}
			if err := ds.Validate(); err != nil {
				t.Errorf("topic %q: dataset example does not validate: %v", topic, err)
			}
		}
	}
	if found == 0 {
		t.Error("no dataset example found in the manual")
	}
}

func datasetBlocks(content string) []string {
	source := []byte(content)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var blocks []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		if string(fcb.Info.Segment.Value(source)) != "json dataset" {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			b.Write(line.Value(source))
		}
		blocks = append(blocks, b.String())
		return ast.WalkContinue, nil
	})
	return blocks
}
