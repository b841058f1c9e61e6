package resources

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/focusmate/internal/docstore"
	"github.com/HendryAvila/focusmate/internal/profile"
	"github.com/HendryAvila/focusmate/internal/testutil"
)

func readReq(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func TestUserFromURI(t *testing.T) {
	tests := []struct {
		uri     string
		want    string
		wantErr bool
	}{
		{"profile://chris", "chris", false},
		{"profile://chris/", "chris", false},
		{"profile://Shubham%20D", "Shubham D", false},
		{"profile://", "", true},
		{"notes://project/status", "", true},
	}
	for _, tt := range tests {
		got, err := userFromURI(tt.uri)
		if (err != nil) != tt.wantErr {
			t.Errorf("userFromURI(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("userFromURI(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func TestHandleProfile(t *testing.T) {
	e := profile.NewEngine(docstore.NewMemoryStore(), testutil.NoopLogger())
	ctx := context.Background()
	if _, err := e.Initialize(ctx, "chris", nil); err != nil {
		t.Fatal(err)
	}
	h := NewHandler(e)

	if got := h.ProfileTemplate().Name; got != "User Productivity Profile" {
		t.Errorf("template name = %q", got)
	}

	contents, err := h.HandleProfile(ctx, readReq("profile://chris"))
	if err != nil {
		t.Fatal(err)
	}
	tc := contents[0].(mcp.TextResourceContents)
	if tc.MIMEType != "application/json" {
		t.Errorf("mime = %q", tc.MIMEType)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(tc.Text), &doc); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if _, ok := doc["metadata"]; !ok {
		t.Error("profile JSON should include metadata")
	}
}

func TestHandleProfile_Missing(t *testing.T) {
	h := NewHandler(profile.NewEngine(docstore.NewMemoryStore(), testutil.NoopLogger()))

	contents, err := h.HandleProfile(context.Background(), readReq("profile://ghost"))
	if err != nil {
		t.Fatal(err)
	}
	tc := contents[0].(mcp.TextResourceContents)
	if !strings.HasPrefix(tc.Text, "Error:") {
		t.Errorf("text = %q, want error resource", tc.Text)
	}

	if _, err := h.HandleProfile(context.Background(), readReq("other://ghost")); err == nil {
		t.Error("expected error for foreign URI")
	}
}
