package llm

import "context"

// FakeClient returns a deterministic canned response for offline use and
// testing. The response mimics real model behavior: surrounding prose, a
// code fence, and icon references that need repair downstream.
type FakeClient struct{}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	return "Here is the diagram you asked for:\n```json\n" + fakeDiagramJSON + "\n```\nHope this helps!", nil
}

const fakeDiagramJSON = `{
  "nodes": [
    {"id": "web", "label": "Web Server", "icon": "web-server.svg", "type": "service", "position": {"x": 100, "y": 100}},
    {"id": "db", "label": "Database", "icon": "database.svg", "type": "database", "position": {"x": 100, "y": 320}}
  ],
  "edges": [
    {"id": "e1", "source": "web", "target": "db", "label": "reads/writes", "type": "default"}
  ],
  "metadata": {"title": "Fake diagram", "description": "offline placeholder"}
}`
