package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juparave/appverify/internal/config"
	"github.com/juparave/appverify/internal/domain"
)

const dbFile = "data/local/Database.kt"

func schemaCheck() *SchemaCheck {
	return NewSchemaCheck(dbFile, "@Entity", "@Dao", "ShoppingListDatabase")
}

func messagesOf(findings []domain.Finding) []string {
	var out []string
	for _, f := range findings {
		out = append(out, f.Message)
	}
	return out
}

func TestSchemaCheck(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:    "complete",
			content: "@Entity data class A()\n@Dao interface ADao\nabstract class ShoppingListDatabase : RoomDatabase()\n",
		},
		{
			name:     "no entities",
			content:  "@Dao interface ADao\nabstract class ShoppingListDatabase\n",
			expected: []string{"Database.kt has no @Entity definitions"},
		},
		{
			name:     "no daos",
			content:  "@Entity data class A()\nabstract class ShoppingListDatabase\n",
			expected: []string{"Database.kt has no @Dao definitions"},
		},
		{
			name:     "no container class",
			content:  "@Entity data class A()\n@Dao interface ADao\nclass ShoppingListDatabase\n",
			expected: []string{"Missing class ShoppingListDatabase"},
		},
		{
			name:    "empty file",
			content: "",
			expected: []string{
				"Database.kt has no @Entity definitions",
				"Database.kt has no @Dao definitions",
				"Missing class ShoppingListDatabase",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := run(t, schemaCheck(), newFS(t, map[string]string{dbFile: tt.content}))

			for _, f := range findings {
				assert.Equal(t, domain.SeverityError, f.Severity)
				assert.Equal(t, dbFile, f.File)
			}
			assert.Equal(t, tt.expected, messagesOf(findings))
		})
	}

	t.Run("absent file is a no-op", func(t *testing.T) {
		assert.Empty(t, run(t, schemaCheck(), newFS(t, nil)))
	})

	t.Run("unset markers never fire", func(t *testing.T) {
		fs := newFS(t, map[string]string{dbFile: "package p\n"})
		assert.Empty(t, run(t, NewSchemaCheck(dbFile, "", "", ""), fs))
	})
}

func TestDependencyCheck(t *testing.T) {
	required := config.DefaultRules().Dependencies

	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name: "all present",
			content: `dependencies {
    implementation("androidx.room:room-runtime:2.6.1")
    implementation(platform("androidx.compose:compose-bom:2024.02.00"))
    implementation("androidx.navigation:navigation-compose:2.7.7")
    implementation("com.google.code.gson:gson:2.10.1")
}`,
		},
		{
			name:    "case insensitive",
			content: "ROOM Compose NaViGaTiOn GSON",
		},
		{
			name:    "none present",
			content: "plugins {\n    id(\"com.android.application\")\n}\n",
			expected: []string{
				"Missing dependency: Room Database",
				"Missing dependency: Jetpack Compose",
				"Missing dependency: Navigation",
				"Missing dependency: Gson JSON",
			},
		},
		{
			name:     "one missing",
			content:  "room compose navigation",
			expected: []string{"Missing dependency: Gson JSON"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFS(t, map[string]string{"app/build.gradle.kts": tt.content})
			findings := run(t, NewDependencyCheck("app/build.gradle.kts", required), fs)

			for _, f := range findings {
				assert.Equal(t, domain.SeverityError, f.Severity)
			}
			assert.Equal(t, tt.expected, messagesOf(findings))
		})
	}

	t.Run("absent file is a no-op", func(t *testing.T) {
		assert.Empty(t, run(t, NewDependencyCheck("app/build.gradle.kts", required), newFS(t, nil)))
	})

	t.Run("table driven", func(t *testing.T) {
		fs := newFS(t, map[string]string{"build.gradle.kts": "room"})
		findings := run(t, NewDependencyCheck("build.gradle.kts", []config.Dependency{
			{Keyword: "Hilt"},
		}), fs)

		require.Len(t, findings, 1)
		assert.Equal(t, "Missing dependency: Hilt", findings[0].Message)
	})
}

func TestAPIVersionCheck(t *testing.T) {
	files := []string{"ui/MainScreen.kt", "ui/ViewModel.kt"}
	newCheck := func() *APIVersionCheck {
		return NewAPIVersionCheck(files, "MaterialTheme", "androidx.compose.material3")
	}

	t.Run("legacy with modern namespace", func(t *testing.T) {
		fs := newFS(t, map[string]string{
			"ui/MainScreen.kt": "import androidx.compose.material3.MaterialTheme\nMaterialTheme {}\n",
		})
		assert.Empty(t, run(t, newCheck(), fs))
	})

	t.Run("legacy alone", func(t *testing.T) {
		fs := newFS(t, map[string]string{
			"ui/MainScreen.kt": "import androidx.compose.material.MaterialTheme\nMaterialTheme {}\n",
		})
		findings := run(t, newCheck(), fs)

		require.Len(t, findings, 1)
		assert.Equal(t, domain.SeverityWarning, findings[0].Severity)
		assert.Equal(t, "Possible Material2 usage instead of Material3: ui/MainScreen.kt", findings[0].Message)
	})

	t.Run("modern alone", func(t *testing.T) {
		fs := newFS(t, map[string]string{
			"ui/ViewModel.kt": "import androidx.compose.material3.Text\n",
		})
		assert.Empty(t, run(t, newCheck(), fs))
	})

	t.Run("one warning per file", func(t *testing.T) {
		fs := newFS(t, map[string]string{
			"ui/MainScreen.kt": "MaterialTheme",
			"ui/ViewModel.kt":  "MaterialTheme MaterialTheme",
		})
		findings := run(t, newCheck(), fs)
		assert.Len(t, findings, 2)
	})

	t.Run("missing files are skipped", func(t *testing.T) {
		assert.Empty(t, run(t, newCheck(), newFS(t, nil)))
	})
}
