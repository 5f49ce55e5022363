// Package main 启动应用程序
package main

import "github.com/yeisme/sitevault/pkg/cmd"

//	@title			SiteVault API
//	@version		1.0
//	@description	SiteVault 是一个静态站点发布服务，提供站点注册、上传、部署与公共访问等功能。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
