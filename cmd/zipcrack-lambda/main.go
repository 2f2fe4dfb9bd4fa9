// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/hashicorp/go-zipcrack/cmd"
)

// main start the zipcrack lambda handler
func main() {
	lambda.Start(cmd.HandleLambda)
}
