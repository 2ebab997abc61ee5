package web

// indexPage is the whole client. It connects back to /ws and strokes each
// frame onto a canvas, mapping the frame origin to the bottom center.
const indexPage = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>flourish</title>
<style>
  html, body { margin: 0; height: 100%; background: #000; }
  canvas { display: block; width: 100vw; height: 100vh; }
</style>
</head>
<body>
<canvas id="c"></canvas>
<script>
const canvas = document.getElementById("c");
const ctx = canvas.getContext("2d");

function resize() {
  canvas.width = window.innerWidth;
  canvas.height = window.innerHeight;
}
window.addEventListener("resize", resize);
resize();

const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = (ev) => {
  const frame = JSON.parse(ev.data);
  ctx.clearRect(0, 0, canvas.width, canvas.height);
  if (!frame.points || frame.points.length === 0) return;

  const scale = Math.min(canvas.width, canvas.height) / (2 * frame.radius);
  const cx = canvas.width / 2;
  const bottom = canvas.height;

  ctx.strokeStyle = "#fff";
  ctx.beginPath();
  ctx.moveTo(cx + frame.points[0][0] * scale, bottom - frame.points[0][1] * scale);
  for (let i = 1; i < frame.points.length; i++) {
    ctx.lineTo(cx + frame.points[i][0] * scale, bottom - frame.points[i][1] * scale);
  }
  ctx.stroke();
};
</script>
</body>
</html>
`
