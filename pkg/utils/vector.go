// Package utils 提供通用工具函数
package utils

import "math"

// Vec3 三维向量（世界坐标，Y 轴朝上，XZ 为水平面）
type Vec3 struct {
	X, Y, Z float64
}

// Add 向量相加
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 向量相减
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 向量数乘
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length 向量长度
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized 返回单位向量；零向量返回零向量
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Distance 两点距离
func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Length()
}

// AngleDeg 返回两个向量之间的夹角（角度，0~180）
// 任一向量长度接近 0 时返回 0
func AngleDeg(a, b Vec3) float64 {
	denom := a.Length() * b.Length()
	if denom < 1e-15 {
		return 0
	}
	cos := a.Dot(b) / denom
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180 / math.Pi
}

// RotateY 绕 Y 轴旋转向量（角度制，从上方看逆时针为正：+X 转向 +Z）
func RotateY(v Vec3, deg float64) Vec3 {
	rad := deg * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return Vec3{
		X: v.X*c - v.Z*s,
		Y: v.Y,
		Z: v.X*s + v.Z*c,
	}
}

// MoveTowards 以最大步长 maxStep 将 from 移向 to，不会越过目标点
func MoveTowards(from, to Vec3, maxStep float64) Vec3 {
	delta := to.Sub(from)
	dist := delta.Length()
	if dist <= maxStep || dist == 0 {
		return to
	}
	return from.Add(delta.Scale(maxStep / dist))
}

// YawToward 返回从 from 看向 to 时在水平面上的朝向角（角度制）
func YawToward(from, to Vec3) float64 {
	d := to.Sub(from)
	return math.Atan2(d.Z, d.X) * 180 / math.Pi
}
