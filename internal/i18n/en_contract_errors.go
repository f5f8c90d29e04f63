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

// User-facing guidance for contract error codes and wallet/network failures
var (
	MsgGreetingNotAuthorized    = ffm("DTX10200", "Not authorized to perform this action")
	MsgGreetingMessageTooLong   = ffm("DTX10201", "Message is too long (max 100 characters)")
	MsgGreetingMessageEmpty     = ffm("DTX10202", "Message cannot be empty")
	MsgGreetingPaymentTooLow    = ffm("DTX10203", "Insufficient payment for this update")
	MsgGreetingEntryNotFound    = ffm("DTX10204", "Greeting entry not found")
	MsgGreetingAlreadyLiked     = ffm("DTX10205", "You have already liked this greeting")
	MsgGreetingOwnLike          = ffm("DTX10206", "You cannot like your own greeting")
	MsgTaskNotAuthorized        = ffm("DTX10210", "You're not authorized to do that. Make sure you're the task owner.")
	MsgTaskMissing              = ffm("DTX10211", "That task was not found. It may have been completed or cancelled.")
	MsgTaskInvalidStatus        = ffm("DTX10212", "Invalid task status. The task may already be assigned or completed.")
	MsgTaskRewardTooLow         = ffm("DTX10213", "Reward amount too low. Minimum reward is 0.1 STX.")
	MsgProfileExists            = ffm("DTX10214", "You already have a profile. Try updating your existing profile instead.")
	MsgProfileMissing           = ffm("DTX10215", "No profile found. Please create a profile first.")
	MsgTokenNotOwner            = ffm("DTX10220", "Only the token owner can do that")
	MsgTokenInsufficientBalance = ffm("DTX10221", "You don't have enough AOD tokens for this transfer")
	MsgTokenAlreadyClaimed      = ffm("DTX10222", "You have already claimed your community tokens")
	MsgTokenDistributionOver    = ffm("DTX10223", "The community distribution has ended")
	MsgUserRejected             = ffm("DTX10230", "Transaction cancelled. No worries!")
	MsgInsufficientFunds        = ffm("DTX10231", "You don't have enough STX to complete this action. Check your wallet balance.")
	MsgNetworkIssue             = ffm("DTX10232", "Network connection issue. Please check your internet and try again.")
	MsgUnknownFailure           = ffm("DTX10233", "Something went wrong. Please try again or contact support if the problem persists.")
)
