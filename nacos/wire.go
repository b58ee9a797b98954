package nacos

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
)

const (
	configsPath  = "/nacos/v1/cs/configs"
	listenerPath = "/nacos/v1/cs/configs/listener"

	longPullingHeader = "Long-Pulling-Timeout"
	longPullingMs     = "30000"

	// 监听协议的字段与记录分隔符，必须按字面字节写入。
	fieldSep  = 0x02
	recordSep = 0x01
)

// listeningLine 按监听协议拼出 Listening-Configs 的值：
// dataId <0x02> group <0x02> md5 [<0x02> namespace] <0x01>。
// namespace 为空串时整个字段连同其前导分隔符一并省略。
func listeningLine(dataID, group, sum, namespace string) string {
	var b bytes.Buffer
	b.WriteString(dataID)
	b.WriteByte(fieldSep)
	b.WriteString(group)
	b.WriteByte(fieldSep)
	b.WriteString(sum)
	if namespace != "" {
		b.WriteByte(fieldSep)
		b.WriteString(namespace)
	}
	b.WriteByte(recordSep)
	return b.String()
}

// md5Hex 计算内容指纹：md5 摘要的小写十六进制编码。
func md5Hex(body []byte) string {
	sum := md5.Sum(body)
	return hex.EncodeToString(sum[:])
}
