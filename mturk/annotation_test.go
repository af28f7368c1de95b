package mturk

import "testing"

func TestBatchIDFromAnnotation(t *testing.T) {
	tests := []struct {
		name       string
		annotation string
		wantID     string
		wantOK     bool
	}{
		{
			name:       "web UI batch annotation",
			annotation: "BatchId:3954555;OriginalHitTemplateId:928390002;",
			wantID:     "3954555",
			wantOK:     true,
		},
		{
			name:       "bare batch marker",
			annotation: "BatchId:42",
			wantID:     "42",
			wantOK:     true,
		},
		{
			name:       "no batch marker",
			annotation: "my own annotation",
			wantOK:     false,
		},
		{
			name:       "empty annotation",
			annotation: "",
			wantOK:     false,
		},
		{
			name:       "marker without digits",
			annotation: "BatchId:;OriginalHitTemplateId:1;",
			wantOK:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := batchIDFromAnnotation(tt.annotation)
			if ok != tt.wantOK {
				t.Fatalf("batchIDFromAnnotation(%q) ok = %v, want %v", tt.annotation, ok, tt.wantOK)
			}
			if id != tt.wantID {
				t.Errorf("batchIDFromAnnotation(%q) = %q, want %q", tt.annotation, id, tt.wantID)
			}
		})
	}
}
