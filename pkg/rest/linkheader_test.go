package rest

import "testing"

func TestNextLink(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{
			name:   "next and last",
			header: `<https://api.example.com/repositories/1/issues?page=2>; rel="next", <https://api.example.com/repositories/1/issues?page=5>; rel="last"`,
			want:   "https://api.example.com/repositories/1/issues?page=2",
		},
		{
			name:   "prev first then next",
			header: `<https://api.example.com/x?page=1>; rel="prev", <https://api.example.com/x?page=3>; rel="next"`,
			want:   "https://api.example.com/x?page=3",
		},
		{
			name:   "last page",
			header: `<https://api.example.com/x?page=4>; rel="prev", <https://api.example.com/x?page=1>; rel="first"`,
			want:   "",
		},
		{
			name:   "empty header",
			header: "",
			want:   "",
		},
		{
			name:   "malformed entries ignored",
			header: `garbage, <https://api.example.com/x?page=2>; rel="next"`,
			want:   "https://api.example.com/x?page=2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextLink(tt.header); got != tt.want {
				t.Errorf("nextLink() = %q, want %q", got, tt.want)
			}
		})
	}
}
