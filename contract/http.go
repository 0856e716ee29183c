/*
 * Copyright 2023 ICON Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package contract

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/icon-project/btp2/common/errors"
	"github.com/icon-project/btp2/common/log"
)

const (
	DefaultTransportLogLevel = log.TraceLevel
	TransportLogLevelLimit   = log.InfoLevel
	DefaultHttpTimeout       = 30 * time.Second
)

type HttpTransport struct {
	*http.Transport
	lv log.Level
	l  log.Logger
}

func (t *HttpTransport) log(prefix string, rc io.ReadCloser) (io.ReadCloser, error) {
	if rc == nil || rc == http.NoBody {
		return rc, nil
	}
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "fail to io.ReadAll err:%s", err.Error())
	}
	if err = rc.Close(); err != nil {
		t.l.Logf(t.lv, "fail to Close %s err:%v", prefix, err)
	}
	t.l.Logln(t.lv, prefix, string(b))
	return io.NopCloser(bytes.NewBuffer(b)), nil
}

func (t *HttpTransport) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	if req.Body, err = t.log(req.Method+" "+req.URL.String(), req.Body); err != nil {
		return nil, err
	}
	if resp, err = t.Transport.RoundTrip(req); err != nil {
		return nil, errors.Wrapf(err, "fail to RoundTrip err:%s", err.Error())
	}
	if resp.Body, err = t.log(resp.Status, resp.Body); err != nil {
		return nil, err
	}
	return resp, err
}

func NewHttpTransport(lv log.Level, l log.Logger) *HttpTransport {
	return &HttpTransport{
		Transport: &http.Transport{},
		lv:        EnsureTransportLogLevel(lv),
		l:         l,
	}
}

func NewHttpClient(lv log.Level, l log.Logger) *http.Client {
	return &http.Client{
		Transport: NewHttpTransport(lv, l),
		Timeout:   DefaultHttpTimeout,
	}
}

func EnsureTransportLogLevel(lv log.Level) log.Level {
	if lv < TransportLogLevelLimit {
		return DefaultTransportLogLevel
	}
	return lv
}
