package password

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("purple-monkey-dinosaur")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "purple-monkey-dinosaur", hash)

	assert.True(t, Verify("purple-monkey-dinosaur", hash))
	assert.False(t, Verify("PURPLE-monkey-dinosaur", hash))
	assert.False(t, Verify("", hash))
}

func TestVerifyAgainstGarbageHash(t *testing.T) {
	assert.False(t, Verify("whatever", "not-a-bcrypt-hash"))
	assert.False(t, Verify("whatever", ""))
}

func TestHashesAreSalted(t *testing.T) {
	first, err := Hash("same-password")
	require.NoError(t, err)
	second, err := Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func ExampleVerify() {
	hash, _ := Hash("pw1")
	fmt.Println(Verify("pw1", hash))
	fmt.Println(Verify("pw2", hash))
	// Output:
	// true
	// false
}
