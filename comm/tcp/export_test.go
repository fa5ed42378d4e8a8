package tcp

var FrameCount = frameCount
