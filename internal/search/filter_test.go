package search

import (
	"testing"

	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, gormDB.AutoMigrate(&models.User{}))

	users := []models.User{
		{
			FullName:     "Alice Johnson",
			Email:        "alice@university.edu",
			PasswordHash: "x",
			Institution:  "Tech University",
			Department:   "Computer Science",
			Year:         "1st Year",
			Skills:       "React,Node.js",
		},
		{
			FullName:     "Bob Smith",
			Email:        "bob@university.edu",
			PasswordHash: "x",
			Institution:  "Tech University",
			Department:   "Data Science",
			Year:         "2nd Year",
			Skills:       "Python,Machine Learning",
		},
		{
			FullName:     "Carol Diaz",
			Email:        "carol@university.edu",
			PasswordHash: "x",
			Institution:  "State College",
			Department:   "Mechanical",
			Year:         "1st Year",
			Skills:       "Arduino,C++",
		},
	}

	require.NoError(t, gormDB.Create(&users).Error)

	return gormDB
}

func findUsers(t *testing.T, gormDB *gorm.DB, filter Filter) []models.User {
	var users []models.User
	err := filter.Apply(gormDB.Model(&models.User{})).Order("id").Find(&users).Error
	require.NoError(t, err)
	return users
}

func names(users []models.User) []string {
	result := make([]string, 0, len(users))
	for _, user := range users {
		result = append(result, user.FullName)
	}
	return result
}

func TestEmptyFilterMatchesEveryone(t *testing.T) {
	gormDB := setupTestDB(t)

	users := findUsers(t, gormDB, Filter{})
	require.Len(t, users, 3)
}

func TestYearIsExactMatch(t *testing.T) {
	gormDB := setupTestDB(t)

	users := findUsers(t, gormDB, Filter{Years: []string{"1st Year"}})
	require.Equal(t, []string{"Alice Johnson", "Carol Diaz"}, names(users))

	// "1st" is not an exact year value, so it matches nothing.
	users = findUsers(t, gormDB, Filter{Years: []string{"1st"}})
	require.Empty(t, users)
}

func TestSkillIsCaseInsensitiveSubstring(t *testing.T) {
	gormDB := setupTestDB(t)

	users := findUsers(t, gormDB, Filter{Skills: []string{"react"}})
	require.Equal(t, []string{"Alice Johnson"}, names(users))
}

func TestSkillsAreOrWithinCategory(t *testing.T) {
	gormDB := setupTestDB(t)

	users := findUsers(t, gormDB, Filter{Skills: []string{"react", "python"}})
	require.Equal(t, []string{"Alice Johnson", "Bob Smith"}, names(users))
}

func TestQueryMatchesAnySearchableColumn(t *testing.T) {
	gormDB := setupTestDB(t)

	// Matches Bob's department and Alice/Carol by nothing.
	users := findUsers(t, gormDB, Filter{Query: "data sci"})
	require.Equal(t, []string{"Bob Smith"}, names(users))

	// Matches Alice and Bob through institution.
	users = findUsers(t, gormDB, Filter{Query: "tech univ"})
	require.Equal(t, []string{"Alice Johnson", "Bob Smith"}, names(users))

	// Whitespace-only query is ignored.
	users = findUsers(t, gormDB, Filter{Query: "   "})
	require.Len(t, users, 3)
}

func TestCategoriesCombineByAnd(t *testing.T) {
	gormDB := setupTestDB(t)

	// "university" alone matches Alice and Bob; the department filter
	// narrows the result to the intersection.
	users := findUsers(t, gormDB, Filter{
		Query:       "university",
		Departments: []string{"Data Science"},
	})
	require.Equal(t, []string{"Bob Smith"}, names(users))

	users = findUsers(t, gormDB, Filter{
		Query:       "comp",
		Departments: []string{"Data Science"},
	})
	require.Empty(t, users)
}

func TestDepartmentIsSubstringMatch(t *testing.T) {
	gormDB := setupTestDB(t)

	users := findUsers(t, gormDB, Filter{Departments: []string{"science"}})
	require.Equal(t, []string{"Alice Johnson", "Bob Smith"}, names(users))
}

func TestAllCategoriesTogether(t *testing.T) {
	gormDB := setupTestDB(t)

	users := findUsers(t, gormDB, Filter{
		Query:       "university",
		Skills:      []string{"node"},
		Years:       []string{"1st Year", "2nd Year"},
		Departments: []string{"Computer"},
	})
	require.Equal(t, []string{"Alice Johnson"}, names(users))
}

func TestConditionsCountsPopulatedCategories(t *testing.T) {
	require.Empty(t, Filter{}.Conditions())
	require.Len(t, Filter{Query: "x"}.Conditions(), 1)
	require.Len(t, Filter{Query: "x", Years: []string{"1st Year"}}.Conditions(), 2)
	require.Len(t, Filter{
		Query:       "x",
		Skills:      []string{"a"},
		Years:       []string{"1st Year"},
		Departments: []string{"d"},
	}.Conditions(), 4)
}
