package tools

import (
	"math/rand"
	"strconv"
	"time"
)

// RandomNumStr returns a random decimal string of the given length,
// used to tag correlated log lines for one request.
func RandomNumStr(length int) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	var result string
	for i := 0; i < length; i++ {
		result += strconv.Itoa(r.Intn(10))
	}
	return result
}
