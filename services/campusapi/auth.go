package campusapi

import (
	"context"

	"github.com/pkg/errors"

	"github.com/siddharth-debugs/college-erp-bite/core/auth"
)

func (api *API) SendLoginOTP(ctx context.Context, req auth.OTPRequest) (auth.Reply, error) {
	var reply auth.Reply
	if err := api.t.Post(ctx, pathSendOTP, req, &reply); err != nil {
		return auth.Reply{}, errors.Wrap(err, "requesting login otp")
	}
	return reply, nil
}

func (api *API) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginReply, error) {
	var reply auth.LoginReply
	if err := api.t.Post(ctx, pathLogin, req, &reply); err != nil {
		return auth.LoginReply{}, errors.Wrap(err, "logging in")
	}
	return reply, nil
}
