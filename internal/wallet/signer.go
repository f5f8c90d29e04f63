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

package wallet

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/kaleido-io/dapptx/internal/clarity"
	"github.com/kaleido-io/dapptx/internal/config"
	"github.com/kaleido-io/dapptx/internal/i18n"
	"github.com/kaleido-io/dapptx/internal/log"
	"github.com/kaleido-io/dapptx/internal/restclient"
	"github.com/kaleido-io/dapptx/pkg/stacks"
)

// RemoteSigner delegates signing and broadcast to a wallet signing service over REST.
// The service signs with the session's key, and either returns the broadcast transaction
// id, or reports that the user rejected the request.
type RemoteSigner struct {
	client   *resty.Client
	session  *Session
	network  string
	signPath string
}

type signRequest struct {
	Network         string        `json:"network"`
	SenderAddress   string        `json:"senderAddress"`
	ContractAddress string        `json:"contractAddress"`
	ContractName    string        `json:"contractName"`
	FunctionName    string        `json:"functionName"`
	FunctionArgs    []string      `json:"functionArgs"`
	PostConditions  []interface{} `json:"postConditions,omitempty"`
	Fee             uint64        `json:"fee,omitempty"`
}

type signResponse struct {
	TxID      string `json:"txid"`
	Cancelled bool   `json:"cancelled,omitempty"`
}

type signError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func NewRemoteSigner(ctx context.Context, prefix config.Prefix, session *Session, network string) *RemoteSigner {
	return &RemoteSigner{
		// A 409 is the user declining, and a repeat of anything else the service saw could prompt them again
		client:   restclient.New(ctx, prefix, restclient.WithRetryCondition(restclient.RetryGatewayErrors)),
		session:  session,
		network:  network,
		signPath: prefix.GetString(WalletConfigSignPath),
	}
}

func wrapError(ctx context.Context, errRes *signError, res *resty.Response, err error) error {
	if errRes != nil && (errRes.Error != "" || errRes.Message != "") {
		msg := errRes.Error
		if errRes.Message != "" {
			msg = errRes.Error + ": " + errRes.Message
		}
		return i18n.WrapError(ctx, err, i18n.MsgSignerRESTErr, msg)
	}
	return restclient.WrapRestErr(ctx, res, err, i18n.MsgSignerRESTErr)
}

// SignAndBroadcast asks the signing service to sign the call, and broadcast it
func (rs *RemoteSigner) SignAndBroadcast(ctx context.Context, call *stacks.ContractCall) (string, error) {
	sender, err := rs.session.Address(ctx)
	if err != nil {
		return "", err
	}
	args := make([]string, len(call.FunctionArgs))
	for i, a := range call.FunctionArgs {
		if args[i], err = clarity.SerializeHex(a); err != nil {
			return "", err
		}
	}
	req := &signRequest{
		Network:         rs.network,
		SenderAddress:   sender,
		ContractAddress: call.ContractAddress,
		ContractName:    call.ContractName,
		FunctionName:    call.FunctionName,
		FunctionArgs:    args,
		Fee:             call.Fee,
	}
	for _, pc := range call.PostConditions {
		req.PostConditions = append(req.PostConditions, pc)
	}

	var resBody signResponse
	var resErr signError
	res, err := rs.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resBody).
		SetError(&resErr).
		Post(rs.signPath)
	if err == nil && (res.StatusCode() == http.StatusConflict || resBody.Cancelled) {
		log.L(ctx).Infof("Signing of %s.%s cancelled by user", call.ContractID(), call.FunctionName)
		return "", stacks.ErrSigningCancelled
	}
	if err != nil || !res.IsSuccess() {
		return "", wrapError(ctx, &resErr, res, err)
	}
	if resBody.TxID == "" {
		return "", i18n.NewError(ctx, i18n.MsgSignerNoTxID)
	}
	log.L(ctx).Infof("Signed and broadcast %s.%s txid=%s", call.ContractID(), call.FunctionName, resBody.TxID)
	return resBody.TxID, nil
}
