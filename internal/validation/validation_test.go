package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "SecurePass12!@", false},
		{"Exactly Min Length", "Abcdefghij1!", false},
		{"Too Short", "Small1!", true},
		{"Too Long", "A" + strings.Repeat("b", 126) + "1!", true},
		{"No Upper", "securepass12!", true},
		{"No Lower", "SECUREPASS12!", true},
		{"No Digit", "SecurePass!!", true},
		{"No Special", "SecurePass123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "test_user123", false},
		{"Too Short", "tu", true},
		{"Too Long", strings.Repeat("a", 31), true},
		{"Illegal Chars", "user@123", true},
		{"Starts Dash", "-user", true},
		{"Ends Underscore", "user_", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateEmail("test@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("user@"))
	assert.Error(t, ValidateEmail("user@@example.com"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@b.com"))
}

func TestValidateTitle(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateTitle("Hello"))
	assert.NoError(t, ValidateTitle(strings.Repeat("й", TitleMaxLength)))
	assert.Error(t, ValidateTitle("   "))
	assert.Error(t, ValidateTitle(strings.Repeat("a", TitleMaxLength+1)))
}

func TestNormalizeComment(t *testing.T) {
	t.Parallel()
	got, err := NormalizeComment("  nice post \n")
	require.NoError(t, err)
	assert.Equal(t, "nice post", got)

	_, err = NormalizeComment(" \t ")
	assert.Error(t, err)

	_, err = NormalizeComment(strings.Repeat("x", CommentMaxLength+1))
	assert.Error(t, err)
}

func TestValidateSlug(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateSlug("travel_2024-Notes"))
	assert.Error(t, ValidateSlug(""))
	assert.Error(t, ValidateSlug("путешествия"))
	assert.Error(t, ValidateSlug("with space"))
	assert.Error(t, ValidateSlug(strings.Repeat("a", SlugMaxLength+1)))
}

func TestValidateLocationName(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateLocationName("Остров отчаянья"))
	assert.Error(t, ValidateLocationName(""))
}
