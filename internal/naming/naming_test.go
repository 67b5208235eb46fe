package naming

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type orderCreated struct{}

type Envelope[T any] struct {
	Payload T
}

type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "single lowercase letter", input: "a", want: "A"},
		{name: "snake_case simple", input: "user_profile", want: "UserProfile"},
		{name: "kebab-case simple", input: "api-client", want: "ApiClient"},
		{name: "dot separator", input: "com.example.api", want: "ComExampleApi"},
		{name: "slash separator", input: "users/profile", want: "UsersProfile"},
		{name: "already PascalCase", input: "UserProfile", want: "UserProfile"},
		{name: "camelCase", input: "userProfile", want: "UserProfile"},
		{name: "unicode lowercase", input: "über_user", want: "ÜberUser"},
		{name: "with numbers", input: "api_v2_client", want: "ApiV2Client"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPascalCase(tt.input))
		})
	}
}

func TestToCamelCase(t *testing.T) {
	assert.Equal(t, "", ToCamelCase(""))
	assert.Equal(t, "orderCreated", ToCamelCase("OrderCreated"))
	assert.Equal(t, "userSignedUp", ToCamelCase("user_signed_up"))
}

func TestWords(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"OrderCreated", []string{"order", "created"}},
		{"HTTPRequest", []string{"http", "request"}},
		{"user_signed_up", []string{"user", "signed", "up"}},
		{"api-v2.client", []string{"api", "v2", "client"}},
		{"Envelope_Created", []string{"envelope", "created"}},
		{"already lower", []string{"already", "lower"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.input))
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "", Title(""))
	assert.Equal(t, "Order Created", Title("OrderCreated"))
	assert.Equal(t, "User Signed Up", Title("user_signed_up"))
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"nil type", nil, "<nil>"},
		{"named struct", reflect.TypeFor[orderCreated](), "naming.orderCreated"},
		{"pointer is unwrapped", reflect.TypeFor[*orderCreated](), "naming.orderCreated"},
		{"builtin", reflect.TypeFor[int](), "int"},
		{"unnamed slice", reflect.TypeFor[[]string](), "[]string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeName(tt.typ))
		})
	}
}

func TestComponentName(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"nil type", nil, ""},
		{"plain struct", reflect.TypeFor[orderCreated](), "orderCreated"},
		{"pointer", reflect.TypeFor[*orderCreated](), "orderCreated"},
		{"unnamed", reflect.TypeFor[map[string]int](), ""},
		{"generic", reflect.TypeFor[Envelope[orderCreated]](), "Envelope_orderCreated"},
		{"generic builtin", reflect.TypeFor[Envelope[int]](), "Envelope_int"},
		{"multi param", reflect.TypeFor[Pair[string, int]](), "Pair_string_int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComponentName(tt.typ))
		})
	}
}
