package utils

import (
	"crypto/rand"
	"math/big"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// ShortID 生成 9 位 base36 随机短 id，用作内容记录主键。
// 碰撞概率极低（36^9 ≈ 10^14），且所有写入路径都是 upsert，重复时退化为覆盖。
func ShortID() string {
	buf := make([]byte, 9)
	max := big.NewInt(int64(len(base36)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand 不可用时进程已无法安全运行
			panic(err)
		}
		buf[i] = base36[n.Int64()]
	}
	return string(buf)
}
