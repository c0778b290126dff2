// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateway

import (
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strconv"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitmark-inc/featherd/address"
	"github.com/bitmark-inc/featherd/counter"
	"github.com/bitmark-inc/featherd/fault"
	"github.com/bitmark-inc/featherd/rpc/assets"
	"github.com/bitmark-inc/featherd/rpc/node"
	"github.com/bitmark-inc/featherd/rpc/ratelimit"
)

const defaultRootCount = 10

// names usable as keys of the allow map
const (
	AllowInfo    = "info"
	AllowMetrics = "metrics"
)

type gateway struct {
	log    *logger.L
	server *rpc.Server
	assets *assets.Assets
	node   *node.Node
	count  *counter.Counter
	allow  map[string][]*net.IPNet
}

// ParseAllow - convert configured CIDR strings
func ParseAllow(allow map[string][]string) (map[string][]*net.IPNet, error) {
	local := make(map[string][]*net.IPNet)
	for name, addresses := range allow {
		set := make([]*net.IPNet, len(addresses))
		for i, ip := range addresses {
			_, cidr, err := net.ParseCIDR(strings.TrimSpace(ip))
			if nil != err {
				return nil, err
			}
			set[i] = cidr
		}
		local[name] = set
	}
	return local, nil
}

// New - build the router
func New(
	log *logger.L,
	server *rpc.Server,
	assetService *assets.Assets,
	nodeService *node.Node,
	count *counter.Counter,
	allow map[string][]*net.IPNet,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	g := &gateway{
		log:    log,
		server: server,
		assets: assetService,
		node:   nodeService,
		count:  count,
		allow:  allow,
	}

	r := gin.New()
	r.Use(gin.Recovery(), g.logRequest())

	v1 := r.Group("/v1")
	v1.POST("/rpc", g.rpc)
	v1.GET("/info", g.restrict(AllowInfo), g.info)
	v1.GET("/root", g.root)
	v1.GET("/roots", g.roots)
	v1.GET("/records/:address", g.record)

	r.GET("/metrics", g.restrict(AllowMetrics), gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}

func (g *gateway) logRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		g.log.Debugf("%s %s  status: %d  from: %s  took: %s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), c.RemoteIP(), time.Since(start))
	}
}

// paths without an allow entry are open
func (g *gateway) restrict(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		set, ok := g.allow[name]
		if !ok {
			c.Next()
			return
		}
		ip := net.ParseIP(c.RemoteIP())
		if nil != ip {
			for _, cidr := range set {
				if cidr.Contains(ip) {
					c.Next()
					return
				}
			}
		}
		g.log.Warnf("deny access: %q  to: %s", c.Request.RemoteAddr, name)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// joins an http body and response into one rpc stream
type internalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *internalConnection) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c *internalConnection) Write(d []byte) (int, error) { return c.out.Write(d) }
func (c *internalConnection) Close() error                { return nil }

func (g *gateway) rpc(c *gin.Context) {
	g.count.Increment()
	defer g.count.Decrement()

	codec := jsonrpc.NewServerCodec(&internalConnection{in: c.Request.Body, out: c.Writer})
	c.Header("Content-Type", "application/json")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Status(http.StatusOK)
	if err := g.server.ServeRequest(codec); nil != err {
		g.log.Warnf("rpc request error: %s", err)
	}
}

func (g *gateway) info(c *gin.Context) {
	var reply node.InfoReply
	if err := g.node.Info(&node.InfoArguments{}, &reply); nil != err {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (g *gateway) root(c *gin.Context) {
	if err := ratelimit.Limit(g.node.Limiter); nil != err {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, g.node.State.CurrentRoot())
}

func (g *gateway) roots(c *gin.Context) {
	count := defaultRootCount
	if s := c.Query("count"); "" != s {
		n, err := strconv.Atoi(s)
		if nil != err {
			sendError(c, fault.InvalidCount)
			return
		}
		count = n
	}

	var reply node.RootsReply
	if err := g.node.Roots(&node.RootsArguments{Count: count}, &reply); nil != err {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (g *gateway) record(c *gin.Context) {
	a, err := address.FromBase58(c.Param("address"))
	if nil != err {
		sendError(c, err)
		return
	}

	var reply assets.GetReply
	err = g.assets.Get(&assets.GetArguments{Addresses: []address.Address{a}}, &reply)
	if nil != err {
		sendError(c, err)
		return
	}
	if 1 != len(reply.Records) || "" == reply.Records[0].Record {
		sendError(c, fault.RecordNotFound)
		return
	}
	c.JSON(http.StatusOK, reply.Records[0])
}

func sendError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case fault.RateLimiting == err:
		status = http.StatusTooManyRequests
	case fault.IsErrNotFound(err):
		status = http.StatusNotFound
	case fault.IsErrInvalid(err), fault.IsErrConstruction(err):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
