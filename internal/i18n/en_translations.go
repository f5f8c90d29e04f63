// Copyright © 2021 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package i18n

import "net/http"

//revive:disable
var (
	MsgConfigFailed           = ffm("DTX10101", "Failed to read config: %s")
	MsgJSONDecodeFailed       = ffe("DTX10102", "Failed to decode input JSON", http.StatusBadRequest)
	MsgAPIServerStartFailed   = ffm("DTX10103", "Unable to start listener on %s: %s")
	MsgResponseMarshalError   = ffe("DTX10104", "Failed to serialize response data", http.StatusBadRequest)
	MsgWebsocketClientError   = ffm("DTX10105", "Error received from WebSocket client: %s")
	Msg404NotFound            = ffe("DTX10106", "Not found", http.StatusNotFound)
	Msg404NoResult            = ffe("DTX10107", "No result found", http.StatusNotFound)
	MsgInvalidContentType     = ffe("DTX10108", "Invalid content type", http.StatusUnsupportedMediaType)
	MsgRequestTimeout         = ffe("DTX10109", "The request with id '%s' timed out after %.2fms", http.StatusRequestTimeout)
	MsgContextCanceled        = ffm("DTX10110", "Context cancelled")
	MsgTimeParseFail          = ffe("DTX10111", "Cannot parse time as RFC3339, Unix, or UnixNano: '%s'", http.StatusBadRequest)
	MsgInvalidLimit           = ffe("DTX10112", "Invalid value for 'limit': %s", http.StatusBadRequest)
	MsgInvalidTxState         = ffe("DTX10113", "Invalid transaction state '%s'", http.StatusBadRequest)
	MsgTransactionNotFound    = ffe("DTX10114", "Transaction '%s' not found", http.StatusNotFound)
	MsgOperationNotFound      = ffe("DTX10115", "Operation '%s' not found", http.StatusNotFound)
	MsgManagerClosed          = ffe("DTX10116", "Transaction manager is closed", http.StatusServiceUnavailable)
	MsgInvalidNetwork         = ffm("DTX10117", "Unknown network mode '%s'")
	MsgMissingConfig          = ffm("DTX10118", "Missing configuration '%s' for %s")
	MsgInvalidSubmission      = ffe("DTX10119", "Invalid submission: %s", http.StatusBadRequest)
	MsgStacksAPIRESTErr       = ffe("DTX10120", "Error from Stacks API: %s", http.StatusBadGateway)
	MsgStacksAPIBadResponse   = ffe("DTX10121", "Invalid response from Stacks API for transaction '%s'", http.StatusBadGateway)
	MsgReadOnlyCallFailed     = ffe("DTX10122", "Read-only call '%s' failed: %s", http.StatusBadGateway)
	MsgSignerRESTErr          = ffe("DTX10123", "Error from wallet signing service: %s", http.StatusBadGateway)
	MsgSignerNoTxID           = ffe("DTX10124", "Wallet signing service returned no transaction id", http.StatusBadGateway)
	MsgSigningCancelled       = ffe("DTX10125", "Transaction cancelled by user", http.StatusConflict)
	MsgWalletNotConnected     = ffe("DTX10126", "Please connect your wallet first", http.StatusUnauthorized)
	MsgStatusCheckFailed      = ffm("DTX10127", "Failed to check transaction status: %s")
	MsgTxTimeout              = ffm("DTX10128", "Transaction timeout - taking longer than expected")
	MsgTxAborted              = ffm("DTX10129", "Transaction failed: %s")
	MsgPollCancelled          = ffm("DTX10130", "Stopped polling transaction '%s'")
	MsgClarityDecodeFailed    = ffe("DTX10131", "Failed to decode Clarity value: %s", http.StatusBadGateway)
	MsgClarityUnknownType     = ffe("DTX10132", "Unknown Clarity type prefix 0x%02x", http.StatusBadGateway)
	MsgClarityInvalidAddress  = ffe("DTX10133", "Invalid Stacks address '%s'", http.StatusBadRequest)
	MsgClarityInvalidName     = ffe("DTX10134", "Invalid Clarity name '%s'", http.StatusBadRequest)
	MsgClarityInvalidContract = ffe("DTX10135", "Invalid contract identifier '%s'", http.StatusBadRequest)
	MsgClarityInvalidASCII    = ffe("DTX10136", "String contains non-ASCII characters", http.StatusBadRequest)
	MsgGreetingEmpty          = ffe("DTX10140", "Message cannot be empty", http.StatusBadRequest)
	MsgGreetingTooLong        = ffe("DTX10141", "Message is too long (max %d characters)", http.StatusBadRequest)
	MsgTaskInputInvalid       = ffe("DTX10142", "Invalid task: %s", http.StatusBadRequest)
	MsgTaskNotFound           = ffe("DTX10143", "Task '%s' not found", http.StatusNotFound)
	MsgInvalidRecipient       = ffe("DTX10144", "Invalid recipient address '%s'", http.StatusBadRequest)
	MsgInvalidAmountFormat    = ffe("DTX10145", "Invalid amount format", http.StatusBadRequest)
	MsgAmountNotPositive      = ffe("DTX10146", "Amount must be greater than 0", http.StatusBadRequest)
	MsgAmountExceedsBalance   = ffe("DTX10147", "Insufficient balance", http.StatusBadRequest)
	MsgAmountTooLarge         = ffe("DTX10148", "Amount exceeds maximum of %d", http.StatusBadRequest)
	MsgInvalidTaskStatus      = ffe("DTX10149", "Invalid task status '%s'", http.StatusBadRequest)
	MsgEngineInitFailed       = ffm("DTX10150", "Failed to initialize %s: %s")
	MsgInvalidOutputOption    = ffm("DTX10151", "Invalid output option '%s'")
	MsgWatchedTxFailed        = ffm("DTX10152", "Transaction '%s' failed: %s")
	MsgAPIRESTErr             = ffm("DTX10153", "Error from dapptx API: %s")
)
