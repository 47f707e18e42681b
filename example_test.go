package regex_test

import (
	"fmt"

	"github.com/serrainoalessio/regex"
)

func ExampleCompile() {
	re, err := regex.Compile("<[a-z.]+>@<[a-z.]+>")
	if err != nil {
		panic(err)
	}
	fmt.Println(re.MatchString("john.doe@example.com"))
	fmt.Println(re.MatchString("not an email"))
	// Output:
	// true
	// false
}

func ExampleRegex_FindStringSubmatch() {
	re := regex.MustCompile("<[a-z.]+>@<[a-z.]+>")
	m := re.FindStringSubmatch("john.doe@example.com")
	fmt.Println(m[1])
	fmt.Println(m[2])
	// Output:
	// john.doe
	// example.com
}

func ExampleRegex_FindSubmatchIndex() {
	re := regex.MustCompile("<b+>")
	fmt.Println(re.FindSubmatchIndex([]byte("aabbbc")))
	// Output:
	// [2 5 2 5]
}

func ExampleQuoteMeta() {
	fmt.Println(regex.QuoteMeta("1+1=2?"))
	// Output:
	// 1\+1=2\?
}
