package privacy

import (
	"strings"
	"testing"
)

func TestScan_Detectors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "clean text",
			text: "just a normal post about the weather",
			want: nil,
		},
		{
			name: "email",
			text: "contact me at a@b.com",
			want: []string{"Email Address detected"},
		},
		{
			name: "phone",
			text: "Call me at 555-123-4567",
			want: []string{"Phone Number detected"},
		},
		{
			name: "phone with country code and parens",
			text: "reach me on +1 (212) 555-0184",
			want: []string{"Phone Number detected"},
		},
		{
			name: "ssn",
			text: "my ssn is 219-09-9999",
			want: []string{"Social Security Number format detected"},
		},
		{
			name: "keyword password",
			text: "my password is x",
			want: []string{`Sensitive keyword: "password" detected`},
		},
		{
			name: "keyword case insensitive",
			text: "the SECRET launch",
			want: []string{`Sensitive keyword: "secret" detected`},
		},
		{
			name: "multiple detectors fire in declaration order",
			text: "email a@b.com, call 555-123-4567, my password and token",
			want: []string{
				"Email Address detected",
				"Phone Number detected",
				`Sensitive keyword: "password" detected`,
				`Sensitive keyword: "token" detected`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Scan() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("warning[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScan_Deterministic(t *testing.T) {
	text := "a@b.com password 555-123-4567"
	first := Scan(text)
	for i := 0; i < 10; i++ {
		again := Scan(text)
		if strings.Join(first, "|") != strings.Join(again, "|") {
			t.Fatalf("Scan is not deterministic: %v vs %v", first, again)
		}
	}
}

func TestScan_SSNReservedRanges(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"valid", "123-45-6789", true},
		{"area 000", "000-45-6789", false},
		{"area 666", "666-45-6789", false},
		{"area 9xx", "923-45-6789", false},
		{"group 00", "123-00-6789", false},
		{"serial 0000", "123-45-0000", false},
		{"space separated", "123 45 6789", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := containsSSN(tt.text); got != tt.want {
				t.Errorf("containsSSN(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
