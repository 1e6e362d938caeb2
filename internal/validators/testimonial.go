package validators

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/site-backend/internal/domain/testimonial"
)

// TestimonialPayload accepts the canonical field names and the legacy
// spellings still sent by older front-ends. JSON keys match
// case-insensitively, so "entreprise" also covers "Entreprise".
type TestimonialPayload struct {
	Name string `json:"name" form:"name"`
	Nom  string `json:"nom" form:"nom"`

	Role     string `json:"role" form:"role"`
	Post     string `json:"post" form:"post"`
	Position string `json:"position" form:"position"`

	Company    string `json:"company" form:"company"`
	Entreprise string `json:"entreprise" form:"entreprise"`

	Comment string `json:"comment" form:"comment"`
	Content string `json:"content" form:"content"`

	Rating json.Number `json:"rating" form:"rating"`

	// In multipart requests "photo" is the uploaded file, read separately.
	Photo         string `json:"photo" form:"-"`
	PhotoURL      string `json:"photoUrl" form:"photoUrl"`
	PhotoURLSnake string `json:"photo_url" form:"photo_url"`
}

type TestimonialInput struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Role    string `json:"role" validate:"required,max=100"`
	Company string `json:"company" validate:"required,max=150"`
	Comment string `json:"comment" validate:"required,min=10,max=1000"`
	Rating  int    `json:"rating"`
	Photo   string `json:"photo" validate:"omitempty,url,max=500"`
}

func Testimonial(p TestimonialPayload) (TestimonialInput, error) {
	in := TestimonialInput{
		Name:    firstNonEmpty(p.Name, p.Nom),
		Role:    firstNonEmpty(p.Role, p.Post, p.Position),
		Company: firstNonEmpty(p.Company, p.Entreprise),
		Comment: firstNonEmpty(p.Comment, p.Content),
		Photo:   firstNonEmpty(p.Photo, p.PhotoURL, p.PhotoURLSnake),
	}

	verr := check(in)

	rating, msg := parseRating(string(p.Rating))
	if msg != "" {
		verr.Add("rating", msg)
	}
	in.Rating = rating

	if err := verr.Err(); err != nil {
		return TestimonialInput{}, err
	}
	return in, nil
}

// parseRating accepts integral values only: "4", 4 and 4.0 pass, 4.5 fails.
func parseRating(raw string) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "Rating is required"
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, "Rating must be an integer between 1 and 5"
		}
		if f < math.MinInt32 || f > math.MaxInt32 {
			return 0, "Rating must be between 1 and 5"
		}
		n = int(f)
	}

	if n < 1 || n > 5 {
		return 0, "Rating must be between 1 and 5"
	}
	return n, ""
}

func TestimonialStatus(p StatusPayload) (testimonial.Status, error) {
	return parseStatus(p, testimonial.Lifecycle.Parse)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
