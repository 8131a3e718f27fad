// Command plancli generates FitSynth plans offline from a profile file.
//
//	plancli generate --profile profile.yaml -o yaml
//	plancli export --profile profile.yaml --out plan.xlsx
//	plancli exercises --type cardio
//	plancli token --sub user-42
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
