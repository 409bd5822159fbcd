package product

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Électronique", "lectronique"},
		{"Maison & Jardin", "maison-jardin"},
		{"  High-Tech  ", "high-tech"},
		{"Jeux Vidéo 2024", "jeux-vid-o-2024"},
		{"---", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, attendu %q", tc.in, got, tc.want)
		}
	}
}
