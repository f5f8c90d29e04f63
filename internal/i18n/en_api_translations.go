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

//revive:disable
var (
	MsgSuccessResponse = ffm("api.success", "Success")
	MsgPathParamID     = ffm("api.params.id", "The identifier of the resource")
	MsgQueryParamState = ffm("api.params.state", "Only return transactions in this state")
	MsgQueryParamLimit = ffm("api.params.limit", "The maximum number of results to return")
	MsgQueryParamStat  = ffm("api.params.status", "Only return tasks with this status")
	MsgQueryParamCat   = ffm("api.params.category", "Only return tasks in this category")
	MsgQueryParamFresh = ffm("api.params.fresh", "Bypass the read-only call cache")

	APIGetStatus            = ffm("api.getStatus", "Gets the transaction counts, and the state of the wallet session")
	APIGetTransactions      = ffm("api.getTransactions", "Lists tracked transactions, newest first")
	APIGetTransactionByID   = ffm("api.getTransactionById", "Gets a tracked transaction by its transaction id")
	APIDeleteTransaction    = ffm("api.deleteTransaction", "Stops tracking a transaction")
	APIPostClearCompleted   = ffm("api.postClearCompleted", "Removes every confirmed and failed transaction")
	APIGetOperations        = ffm("api.getOperations", "Lists submitted operations, newest first")
	APIGetOperationByID     = ffm("api.getOperationById", "Gets a submitted operation by its id")
	APIGetWallet            = ffm("api.getWallet", "Gets the wallet session")
	APIPostWalletConnect    = ffm("api.postWalletConnect", "Signs in with a wallet address")
	APIPostWalletDisconnect = ffm("api.postWalletDisconnect", "Signs out of the wallet session")
	APIGetGreeting          = ffm("api.getGreeting", "Gets the greeting, including unconfirmed updates")
	APIPostGreeting         = ffm("api.postGreeting", "Sets the global greeting, with an STX payment")
	APIPostPersonalGreeting = ffm("api.postPersonalGreeting", "Sets the personal greeting of the connected wallet")
	APIPostLikeGreeting     = ffm("api.postLikeGreeting", "Likes a greeting entry")
	APIGetTasks             = ffm("api.getTasks", "Lists tasks, including unconfirmed updates")
	APIGetTaskState         = ffm("api.getTaskState", "Gets the community stats, profile and task statistics of the connected wallet")
	APIPostTask             = ffm("api.postTask", "Creates a task")
	APIPostTaskApply        = ffm("api.postTaskApply", "Applies for a task")
	APIPostTaskComplete     = ffm("api.postTaskComplete", "Marks an assigned task as completed")
	APIPostTokenTransfer    = ffm("api.postTokenTransfer", "Transfers tokens to another address")
	APIPostTokenClaim       = ffm("api.postTokenClaim", "Claims the community token distribution")
	APIGetTokenBalance      = ffm("api.getTokenBalance", "Gets the token balance, including unconfirmed transfers")
	APIGetTokenHolder       = ffm("api.getTokenHolder", "Gets the holder statistics and reputation of an address")
	APIGetTokenDistribution = ffm("api.getTokenDistribution", "Gets the state of the community distribution")
)
